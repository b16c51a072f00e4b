package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignee is the organization a patent is assigned to.
type Assignee struct {
	Organization string  `bson:"organization" json:"organization"`
	City         *string `bson:"city" json:"city"`
	State        *string `bson:"state" json:"state"`
	Country      string  `bson:"country" json:"country"`
}

// Inventor is one named inventor. City and State are nil when the
// spreadsheet left them blank.
type Inventor struct {
	FirstName string  `bson:"first_name" json:"first_name"`
	LastName  string  `bson:"last_name" json:"last_name"`
	City      *string `bson:"city" json:"city"`
	State     *string `bson:"state" json:"state"`
	Country   string  `bson:"country" json:"country"`
}

// Patent is keyed by PatentNumber. Inventors keep spreadsheet order.
type Patent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PatentNumber string             `bson:"patent_number" json:"patent_number"`
	Assignee     *Assignee          `bson:"assignee" json:"assignee"`
	Inventors    []Inventor         `bson:"inventors" json:"inventors"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
