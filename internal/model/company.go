package model

import "time"

// Company represents a tenant in the system. A company is created by an
// admin user, owns rooms and keeps a roster of users who are allowed to book
// those rooms. The display name is globally unique; NameNorm holds the
// case-insensitive normalized form the uniqueness constraint is built on.
//
// Fields:
//  ID        – primary key identifier.
//  AdminID   – user ID of the owning admin.
//  Name      – display name as entered (title-cased on storage).
//  NameNorm  – normalized lookup form of the name (unique).
//  CreatedAt – timestamp when the company was created.
//  UpdatedAt – timestamp of last update.
type Company struct {
	ID        uint64    `json:"id"`
	AdminID   uint64    `json:"admin_id"`
	Name      string    `json:"name"`
	NameNorm  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyMember is a row on a company's authorized-user roster. A user may
// book rooms of a company when they are its admin or appear on this roster.
type CompanyMember struct {
	CompanyID uint64    `json:"company_id"`
	UserID    uint64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
