package model

import "time"

// Room is a bookable resource scoped to exactly one company. Room names are
// unique within their company, compared on the normalized form. The admin who
// created the room may manage every reservation placed on it.
//
// Fields:
//  ID        – primary key identifier.
//  CompanyID – owning company.
//  AdminID   – user ID of the admin who owns the room.
//  Name      – display name as entered.
//  NameNorm  – normalized lookup form (unique per company).
//  CreatedAt – timestamp when the room was created.
//  UpdatedAt – timestamp of last update.
type Room struct {
	ID        uint64    `json:"id"`
	CompanyID uint64    `json:"company_id"`
	AdminID   uint64    `json:"admin_id"`
	Name      string    `json:"name"`
	NameNorm  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
