package serviceimpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/domain/dto"
	"taskmaster/pkg/apperror"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	_, err := f.users.Register(f.ctx, &dto.RegisterRequest{
		Email: "alice@example.com", Password: "x", FirstName: "A", LastName: "B",
	})
	requireKind(t, err, apperror.KindConflict)

	count, err := f.userRepo.Count(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Register(f.ctx, &dto.RegisterRequest{Email: "a@b.c", Password: "x"})
	requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "firstName and lastName are required", err.Error())
}

func TestRegisterHashesPasswordAndHidesIt(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "alice")

	user, err := f.userRepo.GetByID(f.ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "password-alice", user.Password)
	assert.Equal(t, f.clock.Now(), user.CreatedAt)
}

func TestLoginUsesOneMessageForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	_, errUnknown := f.users.Login(f.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	requireKind(t, errUnknown, apperror.KindAuth)

	_, errWrong := f.users.Login(f.ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	requireKind(t, errWrong, apperror.KindAuth)

	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Equal(t, "Invalid credentials", errWrong.Error())
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Login(f.ctx, &dto.LoginRequest{Email: "alice@example.com"})
	requireKind(t, err, apperror.KindValidation)
}

func TestLoginTokenExpiresAfterSevenDays(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "alice")

	resp, err := f.users.Login(f.ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "password-alice"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.User.ID)

	user, err := f.users.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	f.clock.Advance(7*24*time.Hour - time.Second)
	_, err = f.users.VerifyToken(resp.Token)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	_, err = f.users.VerifyToken(resp.Token)
	requireKind(t, err, apperror.KindAuth)
}

func TestVerifyTokenRejectsMissingAndMalformed(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.VerifyToken("")
	requireKind(t, err, apperror.KindAuth)

	_, err = f.users.VerifyToken("abc.def.ghi")
	requireKind(t, err, apperror.KindAuth)
}

func TestMeReturnsPublicFields(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "alice")

	me, err := f.users.Me(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, dto.PublicUser{ID: id, Email: "alice@example.com", FirstName: "alice", LastName: "Tester"}, *me)

	_, err = f.users.Me(f.ctx, "missing")
	requireKind(t, err, apperror.KindNotFound)
}
