package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cresocrm/internal/common"
	"cresocrm/internal/models"

	"github.com/jackc/pgx/v5"
)

// DistributorRepository is the static record store plus the single
// transaction that keeps a distributor's static row and its dynamic
// values consistent.
type DistributorRepository interface {
	Save(ctx context.Context, id *int64, static map[string]interface{}, dynamic map[string]string, replaceDynamic bool) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Distributor, error)
	GetAll(ctx context.Context) ([]*models.Distributor, error)
	Delete(ctx context.Context, id int64) error
}

type distributorRepo struct {
	db Database
}

func NewDistributorRepository(db Database) DistributorRepository {
	return &distributorRepo{db: db}
}

const distributorColumns = `id, arn, arn_holder_name, city, owner, stage, aum, date_added, priority, linkedin_url, notes_link, notes, address, pin, email, telephone_r, telephone_o, arn_valid_from, arn_valid_till, kyd_compliant, euin, lead_source, platform_used, follow_up_date, secondary_contact, secondary_name, first_call_date`

const (
	arnConflictMsg  = "distributor with this arn already exists"
	fieldRefMsg     = "dynamic value references an unknown field"
	noStaticDataMsg = "at least one static field is required to create a distributor"
)

// Save upserts the static row and, when replaceDynamic is set, replaces
// every dynamic value of the distributor in the same transaction. Either
// both halves commit or neither does.
func (r *distributorRepo) Save(ctx context.Context, id *int64, static map[string]interface{}, dynamic map[string]string, replaceDynamic bool) (int64, error) {
	if id == nil && len(static) == 0 {
		return 0, &common.ValidationError{Message: noStaticDataMsg}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var distributorID int64
	if id == nil {
		distributorID, err = insertStatic(ctx, tx, static)
	} else {
		distributorID = *id
		err = updateStatic(ctx, tx, distributorID, static)
	}
	if err != nil {
		return 0, common.TranslateStoreError(err, arnConflictMsg, fieldRefMsg)
	}

	if replaceDynamic {
		if err := replaceDynamicValues(ctx, tx, distributorID, dynamic); err != nil {
			return 0, common.TranslateStoreError(err, arnConflictMsg, fieldRefMsg)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return distributorID, nil
}

func insertStatic(ctx context.Context, tx pgx.Tx, static map[string]interface{}) (int64, error) {
	cols := sortedKeys(static)
	placeholders := make([]string, len(cols))
	values := make([]interface{}, len(cols))
	for i, col := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		values[i] = static[col]
	}
	query := fmt.Sprintf(
		"INSERT INTO distributors (%s) VALUES (%s) RETURNING id",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	var id int64
	if err := tx.QueryRow(ctx, query, values...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func updateStatic(ctx context.Context, tx pgx.Tx, id int64, static map[string]interface{}) error {
	if len(static) == 0 {
		return nil
	}
	cols := sortedKeys(static)
	setClauses := make([]string, len(cols))
	values := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		setClauses[i] = fmt.Sprintf("%s = $%d", col, i+1)
		values = append(values, static[col])
	}
	values = append(values, id)
	query := fmt.Sprintf(
		"UPDATE distributors SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), len(cols)+1,
	)

	tag, err := tx.Exec(ctx, query, values...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

// replaceDynamicValues implements replace-not-merge semantics: all
// existing values are deleted, then every non-empty incoming value is
// inserted. An empty string means "unset" and is never persisted.
func replaceDynamicValues(ctx context.Context, tx pgx.Tx, id int64, dynamic map[string]string) error {
	if _, err := tx.Exec(ctx, "DELETE FROM distributor_dynamic_values WHERE distributor_id = $1", id); err != nil {
		return err
	}
	for _, key := range sortedKeys(dynamic) {
		value := dynamic[key]
		if value == "" {
			continue
		}
		_, err := tx.Exec(ctx,
			"INSERT INTO distributor_dynamic_values (distributor_id, field_key, field_value) VALUES ($1, $2, $3)",
			id, key, value,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *distributorRepo) GetByID(ctx context.Context, id int64) (*models.Distributor, error) {
	query := fmt.Sprintf("SELECT %s FROM distributors WHERE id = $1", distributorColumns)
	d, err := scanDistributor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, common.TranslateStoreError(err, arnConflictMsg, fieldRefMsg)
	}
	return d, nil
}

func (r *distributorRepo) GetAll(ctx context.Context) ([]*models.Distributor, error) {
	query := fmt.Sprintf("SELECT %s FROM distributors ORDER BY id", distributorColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var distributors []*models.Distributor
	for rows.Next() {
		d, err := scanDistributor(rows)
		if err != nil {
			return nil, err
		}
		distributors = append(distributors, d)
	}
	return distributors, rows.Err()
}

func (r *distributorRepo) Delete(ctx context.Context, id int64) error {
	// Dynamic values and notes go with the row via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx, "DELETE FROM distributors WHERE id = $1", id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDistributor(row rowScanner) (*models.Distributor, error) {
	d := &models.Distributor{}
	err := row.Scan(
		&d.ID, &d.Arn, &d.ArnHolderName, &d.City, &d.Owner, &d.Stage,
		&d.Aum, &d.DateAdded, &d.Priority, &d.LinkedinURL, &d.NotesLink,
		&d.Notes, &d.Address, &d.Pin, &d.Email, &d.TelephoneR,
		&d.TelephoneO, &d.ArnValidFrom, &d.ArnValidTill, &d.KydCompliant,
		&d.Euin, &d.LeadSource, &d.PlatformUsed, &d.FollowUpDate,
		&d.SecondaryContact, &d.SecondaryName, &d.FirstCallDate,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
