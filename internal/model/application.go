package model

import "time"

// Application status values stored in applications.status. Every
// application starts as "new". Status changes are free-form within the
// enum: an employee may move an application to any status from any other
// status, which allows corrections without a transition graph.
const (
	ApplicationNew      = "new"
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application mirrors the `applications` table. UserID references the
// account that submitted the request; ImagePath is nil until an image
// has been uploaded.
type Application struct {
	ID             uint64    `json:"id"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	UserID         uint64    `json:"userId"`
	ImagePath      *string   `json:"imagePath,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
