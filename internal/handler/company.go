package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// CompanyHandler groups the admin-side company endpoints: company CRUD and
// roster management. All of these routes sit behind the ADMIN role
// middleware, so the caller is known to be an admin; the handlers still
// check that the caller administers the specific company being touched.
type CompanyHandler struct {
	Companies *repository.CompanyRepo
	Members   *repository.MemberRepo
	Users     *repository.UserRepo
}

func NewCompanyHandler(companies *repository.CompanyRepo, members *repository.MemberRepo, users *repository.UserRepo) *CompanyHandler {
	return &CompanyHandler{Companies: companies, Members: members, Users: users}
}

// Create handles POST /v1/companies. The stored name is title-cased and
// uniqueness runs on the normalized form, so "acme corp" and "Acme Corp"
// collide.
func (h *CompanyHandler) Create(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	company := &model.Company{AdminID: adminID, Name: name}
	if err := h.Companies.Create(c.Request().Context(), company); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "company name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create company"})
	}
	return c.JSON(http.StatusCreated, company)
}

// List handles GET /v1/companies and returns the companies the caller
// administers.
func (h *CompanyHandler) List(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Companies.ListByAdmin(c.Request().Context(), adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/companies/:id.
func (h *CompanyHandler) Get(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	company, err := h.Companies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, company)
}

// requireAdminOf loads the company and verifies the caller administers it.
func (h *CompanyHandler) requireAdminOf(c echo.Context, companyID, adminID uint64) (*model.Company, error) {
	company, err := h.Companies.GetByID(c.Request().Context(), companyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if company.AdminID != adminID {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "not your company"})
	}
	return company, nil
}

// AddMember handles POST /v1/companies/:id/members. The member is looked up
// by email; adding someone twice is accepted and changes nothing.
func (h *CompanyHandler) AddMember(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.TrimSpace(strings.ToLower(body.Email))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	if _, err := h.requireAdminOf(c, companyID, adminID); err != nil {
		return err
	}
	user, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err := h.Members.Add(c.Request().Context(), companyID, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add member"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"company_id": companyID, "user_id": user.ID})
}

// ListMembers handles GET /v1/companies/:id/members.
func (h *CompanyHandler) ListMembers(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.requireAdminOf(c, companyID, adminID); err != nil {
		return err
	}
	users, err := h.Members.ListUsers(c.Request().Context(), companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// RemoveMember handles DELETE /v1/companies/:id/members/:userID. Like
// reservation cancellation the response reports a count, and removing an
// absent member yields 0 rather than an error.
func (h *CompanyHandler) RemoveMember(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if _, err := h.requireAdminOf(c, companyID, adminID); err != nil {
		return err
	}
	count, err := h.Members.Remove(c.Request().Context(), companyID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove member"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": count})
}
