package repository

import (
	"context"
	"database/sql"

	"github.com/movierental/backend/internal/model"
)

// ApplicationRepo encapsulates all database queries for the
// `applications` table. Status values are constrained by the column
// enum; beyond that any status may be set from any prior status, which
// is intentional (free correction, no transition graph).
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

const applicationColumns = "id, applicant_name, applicant_email, description, status, user_id, image_path, created_at"

func scanApplication(row interface{ Scan(...any) error }) (model.Application, error) {
	var a model.Application
	var image sql.NullString
	err := row.Scan(&a.ID, &a.ApplicantName, &a.ApplicantEmail, &a.Description,
		&a.Status, &a.UserID, &image, &a.CreatedAt)
	if err != nil {
		return model.Application{}, err
	}
	if image.Valid {
		p := image.String
		a.ImagePath = &p
	}
	return a, nil
}

// Create inserts a new application. Status always starts as "new" and
// created_at is stamped by the database; both are read back so the
// caller receives a fully populated record.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO applications (applicant_name, applicant_email, description, user_id) VALUES (?,?,?,?)",
		a.ApplicantName, a.ApplicantEmail, a.Description, a.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT status, created_at FROM applications WHERE id=?", a.ID).
		Scan(&a.Status, &a.CreatedAt)
}

func (r *ApplicationRepo) list(ctx context.Context, query string, args ...any) ([]model.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// List returns every application.
func (r *ApplicationRepo) List(ctx context.Context) ([]model.Application, error) {
	return r.list(ctx, "SELECT "+applicationColumns+" FROM applications ORDER BY id")
}

// ListByUser returns the applications submitted by one user.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Application, error) {
	return r.list(ctx, "SELECT "+applicationColumns+" FROM applications WHERE user_id=? ORDER BY id", userID)
}

// ListByEmail returns the applications carrying a given applicant email.
func (r *ApplicationRepo) ListByEmail(ctx context.Context, email string) ([]model.Application, error) {
	return r.list(ctx, "SELECT "+applicationColumns+" FROM applications WHERE applicant_email=? ORDER BY id", email)
}

// UpdateStatus sets the status unconditionally. A zero matched count
// maps to ErrApplicationNotFound.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE applications SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrApplicationNotFound)
}

// AttachImage stores the uploaded image path on the application.
func (r *ApplicationRepo) AttachImage(ctx context.Context, id uint64, path string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE applications SET image_path=? WHERE id=?", path, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrApplicationNotFound)
}
