package projectdata

// ContactNotes is the sales pipeline record kept on a contact.
type ContactNotes struct {
	Qualification *Qualification         `json:"qualification,omitempty"`
	Communication []ContactCommunication `json:"communication,omitempty" validate:"omitempty,dive"`
	FollowUps     []FollowUp             `json:"followUps,omitempty" validate:"omitempty,dive"`
	CustomFields  map[string]any         `json:"customFields,omitempty"`
}

type Qualification struct {
	Budget        *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Timeline      string   `json:"timeline,omitempty"`
	DecisionMaker string   `json:"decisionMaker,omitempty"`
	Competition   []string `json:"competition,omitempty"`
	PainPoints    []string `json:"painPoints,omitempty"`
	Requirements  []string `json:"requirements,omitempty"`
}

type ContactCommunication struct {
	ID          string   `json:"id" validate:"required"`
	Type        string   `json:"type" validate:"required,oneof=email phone meeting site_visit"`
	Subject     string   `json:"subject,omitempty"`
	Content     string   `json:"content" validate:"required"`
	Direction   string   `json:"direction" validate:"required,oneof=inbound outbound"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	CreatedBy   uint     `json:"createdBy,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

const (
	FollowUpPending   = "pending"
	FollowUpCompleted = "completed"
	FollowUpOverdue   = "overdue"
)

type FollowUp struct {
	ID          string `json:"id" validate:"required"`
	Task        string `json:"task" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=pending completed overdue"`
	AssignedTo  uint   `json:"assignedTo,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func cloneContactNotes(notes *ContactNotes) *ContactNotes {
	if notes == nil {
		return &ContactNotes{}
	}
	out := *notes
	return &out
}

func AddContactCommunication(notes *ContactNotes, entry ContactCommunication) *ContactNotes {
	out := cloneContactNotes(notes)
	out.Communication = appended(out.Communication, entry)
	return out
}

func AddFollowUp(notes *ContactNotes, followUp FollowUp) *ContactNotes {
	out := cloneContactNotes(notes)
	out.FollowUps = appended(out.FollowUps, followUp)
	return out
}

// UpdateQualification merges the non-empty fields of q into the current
// qualification.
func UpdateQualification(notes *ContactNotes, q Qualification) *ContactNotes {
	out := cloneContactNotes(notes)
	var merged Qualification
	if out.Qualification != nil {
		merged = *out.Qualification
	}
	if q.Budget != nil {
		b := *q.Budget
		merged.Budget = &b
	}
	if q.Timeline != "" {
		merged.Timeline = q.Timeline
	}
	if q.DecisionMaker != "" {
		merged.DecisionMaker = q.DecisionMaker
	}
	if q.Competition != nil {
		merged.Competition = q.Competition
	}
	if q.PainPoints != nil {
		merged.PainPoints = q.PainPoints
	}
	if q.Requirements != nil {
		merged.Requirements = q.Requirements
	}
	out.Qualification = &merged
	return out
}

// CompleteFollowUp marks the follow-up with id as completed now. It returns
// notes itself when there is no follow-up list.
func CompleteFollowUp(notes *ContactNotes, id, remark string) *ContactNotes {
	if notes == nil || notes.FollowUps == nil {
		return notes
	}
	completedAt := Timestamp(now())
	out := cloneContactNotes(notes)
	out.FollowUps = updated(out.FollowUps,
		func(f FollowUp) bool { return f.ID == id },
		func(f *FollowUp) {
			f.Status = FollowUpCompleted
			f.CompletedAt = completedAt
			if remark != "" {
				f.Notes = remark
			}
		})
	return out
}

func FindFollowUp(notes *ContactNotes, id string) (FollowUp, bool) {
	if notes == nil {
		return FollowUp{}, false
	}
	return find(notes.FollowUps, func(f FollowUp) bool { return f.ID == id })
}
