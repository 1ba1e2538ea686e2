package projectdata

// Notes is the project's working log: internal notes, the client
// communication history, the milestone timeline and open issues.
type Notes struct {
	Internal      []InternalNote     `json:"internal,omitempty" validate:"omitempty,dive"`
	Communication []CommunicationLog `json:"communication,omitempty" validate:"omitempty,dive"`
	Milestones    []Milestone        `json:"milestones,omitempty" validate:"omitempty,dive"`
	Issues        []Issue            `json:"issues,omitempty" validate:"omitempty,dive"`
}

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneDelayed    MilestoneStatus = "delayed"
	MilestoneCancelled  MilestoneStatus = "cancelled"
)

// Valid reports whether s is one of the known milestone statuses.
func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted, MilestoneDelayed, MilestoneCancelled:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type InternalNote struct {
	ID        string   `json:"id" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Category  string   `json:"category,omitempty" validate:"omitempty,oneof=general technical client_communication issue milestone"`
	Priority  string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	CreatedAt string   `json:"createdAt,omitempty"`
	CreatedBy uint     `json:"createdBy,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
	UpdatedBy *uint    `json:"updatedBy,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type CommunicationLog struct {
	ID          string   `json:"id" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=email phone meeting site_visit text"`
	Subject     string   `json:"subject,omitempty"`
	Content     string   `json:"content" validate:"required"`
	Direction   string   `json:"direction" validate:"required,oneof=inbound outbound"`
	ClientName  string   `json:"clientName,omitempty"`
	ClientEmail string   `json:"clientEmail,omitempty"`
	ClientPhone string   `json:"clientPhone,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	CreatedBy   uint     `json:"createdBy,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

type Milestone struct {
	ID           string          `json:"id" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description,omitempty"`
	PlannedDate  string          `json:"plannedDate" validate:"required"`
	ActualDate   string          `json:"actualDate,omitempty"`
	Status       MilestoneStatus `json:"status" validate:"required,oneof=pending in_progress completed delayed cancelled"`
	Priority     string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Dependencies []string        `json:"dependencies,omitempty"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	CreatedBy    uint            `json:"createdBy,omitempty"`
}

type Issue struct {
	ID          string      `json:"id" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity" validate:"required,oneof=low medium high critical"`
	Status      IssueStatus `json:"status" validate:"required,oneof=open in_progress resolved closed"`
	Category    string      `json:"category,omitempty"`
	ReportedAt  string      `json:"reportedAt,omitempty"`
	ReportedBy  uint        `json:"reportedBy,omitempty"`
	AssignedTo  *uint       `json:"assignedTo,omitempty"`
	ResolvedAt  string      `json:"resolvedAt,omitempty"`
	ResolvedBy  *uint       `json:"resolvedBy,omitempty"`
	Resolution  string      `json:"resolution,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Active reports whether the issue still needs work.
func (i Issue) Active() bool {
	return i.Status == IssueOpen || i.Status == IssueInProgress
}

func cloneNotes(notes *Notes) *Notes {
	if notes == nil {
		return &Notes{}
	}
	out := *notes
	return &out
}

func AddInternalNote(notes *Notes, note InternalNote) *Notes {
	out := cloneNotes(notes)
	out.Internal = appended(out.Internal, note)
	return out
}

func AddCommunicationLog(notes *Notes, entry CommunicationLog) *Notes {
	out := cloneNotes(notes)
	out.Communication = appended(out.Communication, entry)
	return out
}

func AddMilestone(notes *Notes, milestone Milestone) *Notes {
	out := cloneNotes(notes)
	out.Milestones = appended(out.Milestones, milestone)
	return out
}

func AddIssue(notes *Notes, issue Issue) *Notes {
	out := cloneNotes(notes)
	out.Issues = appended(out.Issues, issue)
	return out
}

// UpdateMilestoneStatus sets status, and actualDate when it is not empty, on
// the milestone with milestoneID. It returns notes itself (nil included) when
// there is no milestone list. Other milestones pass through untouched.
func UpdateMilestoneStatus(notes *Notes, milestoneID string, status MilestoneStatus, actualDate string) *Notes {
	if notes == nil || notes.Milestones == nil {
		return notes
	}
	out := cloneNotes(notes)
	out.Milestones = updated(out.Milestones,
		func(m Milestone) bool { return m.ID == milestoneID },
		func(m *Milestone) {
			m.Status = status
			if actualDate != "" {
				m.ActualDate = actualDate
			}
		})
	return out
}

// ResolveIssue marks the issue with issueID as resolved now by resolvedBy. It
// returns notes itself (nil included) when there is no issue list.
func ResolveIssue(notes *Notes, issueID, resolution string, resolvedBy uint) *Notes {
	if notes == nil || notes.Issues == nil {
		return notes
	}
	resolvedAt := Timestamp(now())
	out := cloneNotes(notes)
	out.Issues = updated(out.Issues,
		func(i Issue) bool { return i.ID == issueID },
		func(i *Issue) {
			by := resolvedBy
			i.Status = IssueResolved
			i.ResolvedAt = resolvedAt
			i.ResolvedBy = &by
			i.Resolution = resolution
		})
	return out
}

func FindMilestone(notes *Notes, id string) (Milestone, bool) {
	if notes == nil {
		return Milestone{}, false
	}
	return find(notes.Milestones, func(m Milestone) bool { return m.ID == id })
}

func FindIssue(notes *Notes, id string) (Issue, bool) {
	if notes == nil {
		return Issue{}, false
	}
	return find(notes.Issues, func(i Issue) bool { return i.ID == id })
}
