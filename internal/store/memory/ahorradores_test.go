package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coopandina/ahorro-backoffice/internal/domain/repository"
)

func nuevoInput(cedula string) repository.CreateAhorradorInput {
	return repository.CreateAhorradorInput{
		Nombre:       "María Pérez",
		Cedula:       cedula,
		Telefono:     "0991234567",
		Direccion:    "Av. Amazonas 123",
		Email:        "maria@example.com",
		FechaIngreso: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, nuevoInput("1712345678"))
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	require.False(t, a.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, "1712345678", got.Cedula)

	_, err = repo.GetByID(ctx, "no-existe")
	require.True(t, repository.IsNotFound(err))
}

func TestList_InsertionOrder(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	var ids []string
	for _, ced := range []string{"100", "200", "300"} {
		a, err := repo.Create(ctx, nuevoInput(ced))
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := range list {
		require.Equal(t, ids[i], list[i].ID)
	}
}

func TestGetByCedula_FirstWins(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, nuevoInput("999"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, nuevoInput("999"))
	require.NoError(t, err)

	got, err := repo.GetByCedula(ctx, "999")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)

	_, err = repo.GetByCedula(ctx, "000")
	require.True(t, repository.IsNotFound(err))
}

func TestUpdate_PartialMerge(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, nuevoInput("123"))
	require.NoError(t, err)

	telefono := "0998887777"
	got, err := repo.Update(ctx, a.ID, repository.UpdateAhorradorInput{Telefono: &telefono})
	require.NoError(t, err)

	// solo el teléfono cambia; el resto queda intacto
	require.Equal(t, "0998887777", got.Telefono)
	require.Equal(t, a.Nombre, got.Nombre)
	require.Equal(t, a.Cedula, got.Cedula)
	require.Equal(t, a.Email, got.Email)
	require.Equal(t, a.FechaIngreso, got.FechaIngreso)
	require.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestUpdate_ExtraMerges(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	in := nuevoInput("123")
	in.Extra = map[string]any{"sucursal": "quito", "plan": "basico"}
	a, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Update(ctx, a.ID, repository.UpdateAhorradorInput{
		Extra: map[string]any{"plan": "premium", "referido": true},
	})
	require.NoError(t, err)
	require.Equal(t, "quito", got.Extra["sucursal"])
	require.Equal(t, "premium", got.Extra["plan"])
	require.Equal(t, true, got.Extra["referido"])
}

func TestUpdate_NotFoundDoesNotMutate(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	nombre := "otro"
	_, err := repo.Update(ctx, "no-existe", repository.UpdateAhorradorInput{Nombre: &nombre})
	require.True(t, repository.IsNotFound(err))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDelete(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	a, err := repo.Create(ctx, nuevoInput("123"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.True(t, repository.IsNotFound(repo.Delete(ctx, a.ID)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestClones_NoAliasing(t *testing.T) {
	repo := NewAhorradorRepository()
	ctx := context.Background()

	in := nuevoInput("123")
	in.Extra = map[string]any{"k": "v"}
	a, err := repo.Create(ctx, in)
	require.NoError(t, err)

	// mutar la copia retornada no debe tocar el estado interno
	a.Extra["k"] = "mutado"
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "v", got.Extra["k"])
}
