package projectdata

import "github.com/google/uuid"

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func NewImageID() string         { return newID("img") }
func NewProgressImageID() string { return newID("progress") }
func NewNoteID() string          { return newID("note") }
func NewCommunicationID() string { return newID("comm") }
func NewMilestoneID() string     { return newID("milestone") }
func NewIssueID() string         { return newID("issue") }
func NewDocumentID() string      { return newID("doc") }
func NewFollowUpID() string      { return newID("followup") }
