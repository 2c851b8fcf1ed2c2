package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Placeholders used when a stored report is missing a field.
const (
	DefaultReportTitle = "Saved report"
	NotAvailable       = "N/A"
	NoNote             = "—"
)

// Identity is the signed-in user as asserted by the identity provider.
type Identity struct {
	Email  string `json:"email" example:"ana@example.com"`
	Name   string `json:"name,omitempty" example:"Ana"`
	Avatar string `json:"avatar,omitempty"`
} // @name Identity

// IsZero reports whether no user is identified.
func (i Identity) IsZero() bool {
	return i.Email == ""
}

// ReportPayload is the display-ready summary persisted for a quote.
//
// @Description Report fields as rendered for the user
type ReportPayload struct {
	Title       string `bson:"title" json:"title" example:"Ceramic mug"`
	Packaging   string `bson:"packaging" json:"packaging" example:"Box"`
	Dims        string `bson:"dims" json:"dims" example:"13.1 × 6.1 × 8.1 (W×D×H)"`
	Utilization string `bson:"utilization" json:"utilization" example:"23.2%"`
	VoidSpace   string `bson:"void_space" json:"void_space" example:"76.8% (~497.3³ units)"`
	AINote      string `bson:"ai_note" json:"ai_note" example:"Tighten fit to reduce void"`
	ReportText  string `bson:"report_text" json:"report_text"`
} // @name ReportPayload

// Report is a saved report owned by one user.
//
// @Description Saved packaging report
type Report struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string" example:"6650c0f4e13a4b5d8c1e2f3a"`
	UserEmail     string             `bson:"user_email" json:"-"`
	ReportPayload `bson:",inline"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
} // @name Report

// WithDefaults fills empty display fields with their placeholders.
func (r Report) WithDefaults() Report {
	if r.Title == "" {
		r.Title = DefaultReportTitle
	}
	if r.Packaging == "" {
		r.Packaging = NotAvailable
	}
	if r.Dims == "" {
		r.Dims = NotAvailable
	}
	if r.Utilization == "" {
		r.Utilization = NotAvailable
	}
	if r.VoidSpace == "" {
		r.VoidSpace = NotAvailable
	}
	if r.AINote == "" {
		r.AINote = NoNote
	}
	return r
}

// Feedback is one "confirm and train" event for a product and the box the user accepted.
type Feedback struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID        string             `bson:"event_id" json:"event_id"`
	Key            string             `bson:"key" json:"key"`
	UserEmail      string             `bson:"user_email,omitempty" json:"user_email,omitempty"`
	Product        Product            `bson:"product" json:"product"`
	Box            BoxDimensions      `bson:"box" json:"box"`
	ThicknessLevel int                `bson:"thickness_level" json:"thickness_level"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
