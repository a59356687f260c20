package models

type ApplicationStatus string

const (
	StatusDraft            ApplicationStatus = "Draft"
	StatusSubmitted        ApplicationStatus = "Submitted"
	StatusUnderReview      ApplicationStatus = "Under-Review"
	StatusApproved         ApplicationStatus = "Approved"
	StatusRejected         ApplicationStatus = "Rejected"
	StatusAppealed         ApplicationStatus = "Appealed"
	StatusWithdrawn        ApplicationStatus = "Withdrawn"
	StatusPendingDocuments ApplicationStatus = "Pending-Documents"
)

var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:            {StatusSubmitted, StatusWithdrawn},
	StatusSubmitted:        {StatusUnderReview, StatusPendingDocuments, StatusWithdrawn},
	StatusPendingDocuments: {StatusUnderReview, StatusWithdrawn},
	StatusUnderReview:      {StatusApproved, StatusRejected, StatusPendingDocuments},
	StatusRejected:         {StatusAppealed},
	StatusAppealed:         {StatusUnderReview, StatusApproved, StatusRejected},
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusApproved,
		StatusRejected, StatusAppealed, StatusWithdrawn, StatusPendingDocuments:
		return true
	}
	return false
}

// CanTransition reports whether an application in status s may move to next.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s ApplicationStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// Application tracks a citizen's application to one scheme. Dates are RFC3339.
type Application struct {
	ApplicationID        string            `json:"applicationId"`
	UserID               string            `json:"userId"`
	SchemeID             string            `json:"schemeId"`
	SchemeName           string            `json:"schemeName"`
	ApplicationDate      string            `json:"applicationDate"`
	Status               ApplicationStatus `json:"status"`
	LastStatusUpdateDate string            `json:"lastStatusUpdateDate"`
}
