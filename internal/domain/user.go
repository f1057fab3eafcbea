package domain

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
	UserBlocked  UserStatus = "blocked"
)

// VerificationDocuments holds references to the identity documents a seller
// submitted for approval.
type VerificationDocuments struct {
	DocumentFront string `json:"documentFront,omitempty"`
	DocumentBack  string `json:"documentBack,omitempty"`
	Selfie        string `json:"selfie,omitempty"`
	SubmittedAt   string `json:"submittedAt,omitempty"`
}

type User struct {
	ID            string                 `json:"id"`
	Email         string                 `json:"email"`
	Name          string                 `json:"name"`
	CPF           string                 `json:"cpf,omitempty"`
	Role          UserRole               `json:"role"`
	Status        UserStatus             `json:"status"`
	Documents     *VerificationDocuments `json:"documents,omitempty"`
	Balance       float64                `json:"balance"`
	TotalReceived float64                `json:"totalReceived"`
	TotalSales    int                    `json:"totalSales"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}

func (u User) Clone() User {
	if u.Documents != nil {
		d := *u.Documents
		u.Documents = &d
	}
	return u
}
