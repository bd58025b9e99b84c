// Package pg implementa el repositorio de ahorradores sobre PostgreSQL
// usando pgxpool.
package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
)

const ahorradorColumns = `id, nombre, cedula, telefono, direccion, email, fecha_ingreso, extra, created_at, updated_at`

type ahorradorRepo struct {
	pool *pgxpool.Pool
}

// NewAhorradorRepository crea el repositorio sobre un pool existente.
func NewAhorradorRepository(pool *pgxpool.Pool) repository.AhorradorRepository {
	return &ahorradorRepo{pool: pool}
}

func (r *ahorradorRepo) List(ctx context.Context) ([]repository.Ahorrador, error) {
	query := `SELECT ` + ahorradorColumns + ` FROM ahorrador ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []repository.Ahorrador{}
	for rows.Next() {
		a, err := scanAhorrador(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *ahorradorRepo) GetByID(ctx context.Context, id string) (*repository.Ahorrador, error) {
	// un id que no es UUID no puede existir en la tabla; sin este chequeo el
	// cast a uuid falla en postgres (22P02) y se degrada en error interno
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	query := `SELECT ` + ahorradorColumns + ` FROM ahorrador WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *ahorradorRepo) GetByCedula(ctx context.Context, cedula string) (*repository.Ahorrador, error) {
	// la unicidad de cédula no se exige acá: con duplicados gana el más antiguo
	query := `SELECT ` + ahorradorColumns + ` FROM ahorrador WHERE cedula = $1 ORDER BY created_at LIMIT 1`
	return r.getOne(ctx, query, cedula)
}

func (r *ahorradorRepo) getOne(ctx context.Context, query string, arg any) (*repository.Ahorrador, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	return scanAhorrador(rows)
}

func (r *ahorradorRepo) Create(ctx context.Context, input repository.CreateAhorradorInput) (*repository.Ahorrador, error) {
	extra, err := marshalExtra(input.Extra)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO ahorrador (id, nombre, cedula, telefono, direccion, email, fecha_ingreso, extra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ahorradorColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), input.Nombre, input.Cedula, input.Telefono,
		input.Direccion, input.Email, input.FechaIngreso, extra,
	)
	return scanAhorradorRow(row)
}

func (r *ahorradorRepo) Update(ctx context.Context, id string, input repository.UpdateAhorradorInput) (*repository.Ahorrador, error) {
	// UPDATE condicional en una sola sentencia: si el id no existe no se muta
	// nada y pgx.ErrNoRows se mapea a ErrNotFound.
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Nombre != nil {
		add("nombre", *input.Nombre)
	}
	if input.Cedula != nil {
		add("cedula", *input.Cedula)
	}
	if input.Telefono != nil {
		add("telefono", *input.Telefono)
	}
	if input.Direccion != nil {
		add("direccion", *input.Direccion)
	}
	if input.Email != nil {
		add("email", *input.Email)
	}
	if input.FechaIngreso != nil {
		add("fecha_ingreso", *input.FechaIngreso)
	}
	if len(input.Extra) > 0 {
		extra, err := marshalExtra(input.Extra)
		if err != nil {
			return nil, err
		}
		args = append(args, extra)
		// merge de atributos opcionales, no reemplazo
		sets = append(sets, fmt.Sprintf("extra = COALESCE(extra, '{}'::jsonb) || $%d::jsonb", len(args)))
	}

	query := `UPDATE ahorrador SET `
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += ` WHERE id = $1 RETURNING ` + ahorradorColumns

	row := r.pool.QueryRow(ctx, query, args...)
	a, err := scanAhorradorRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *ahorradorRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM ahorrador WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// scanAhorrador lee una fila desde rows (que ya hizo Next).
func scanAhorrador(rows pgx.Rows) (*repository.Ahorrador, error) {
	var a repository.Ahorrador
	var fechaIngreso time.Time
	var extra []byte
	if err := rows.Scan(
		&a.ID, &a.Nombre, &a.Cedula, &a.Telefono, &a.Direccion, &a.Email,
		&fechaIngreso, &extra, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.FechaIngreso = fechaIngreso
	if err := unmarshalExtra(extra, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAhorradorRow(row pgx.Row) (*repository.Ahorrador, error) {
	var a repository.Ahorrador
	var fechaIngreso time.Time
	var extra []byte
	if err := row.Scan(
		&a.ID, &a.Nombre, &a.Cedula, &a.Telefono, &a.Direccion, &a.Email,
		&fechaIngreso, &extra, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.FechaIngreso = fechaIngreso
	if err := unmarshalExtra(extra, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func marshalExtra(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return []byte(`{}`), nil
	}
	return json.Marshal(m)
}

func unmarshalExtra(b []byte, a *repository.Ahorrador) error {
	if len(b) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if len(m) > 0 {
		a.Extra = m
	}
	return nil
}
