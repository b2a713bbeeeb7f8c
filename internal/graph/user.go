package graph

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/lib/pq"

	"github.com/the-wia/wia-backend/internal/models"
	"github.com/the-wia/wia-backend/internal/store"
	"github.com/the-wia/wia-backend/pkg/utils"
)

// uniqueViolation is the Postgres error code for unique constraint breaches.
const uniqueViolation = pq.ErrorCode("23505")

// registerKeys is the key-detection order for mapping a unique violation to
// a field error.
var registerKeys = []string{"email", "username"}

// RegisterInput mirrors the register mutation's input object.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// resolveUserEmail redacts the email field: only the session owner sees
// their own address, everyone else gets "".
func (r *Resolver) resolveUserEmail(p graphql.ResolveParams) (interface{}, error) {
	user, ok := p.Source.(*models.User)
	if !ok {
		if u, ok := p.Source.(models.User); ok {
			user = &u
		} else {
			return "", nil
		}
	}
	if sess := SessionFrom(p.Context); sess != nil && sess.UserID() == user.ID {
		return user.Email, nil
	}
	return "", nil
}

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	sess := SessionFrom(p.Context)
	if sess == nil || !sess.Authenticated() {
		return nil, nil
	}
	return r.users.UserByID(p.Context, sess.UserID())
}

func (r *Resolver) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	opts := registerInputFromArgs(p.Args["options"].(map[string]interface{}))

	if errs := validateRegister(opts); len(errs) > 0 {
		return &UserResponse{Errors: errs}, nil
	}

	hash, err := utils.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	id, err := r.users.InsertUser(p.Context, &models.User{
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		Email:     opts.Email,
		Username:  opts.Username,
		Password:  hash,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			key := utils.KeyConstraint(pqErr.Detail, registerKeys)
			return &UserResponse{Errors: []FieldError{{
				Field:   key,
				Message: utils.Capitalize(key) + " has already been taken",
			}}}, nil
		}
		log.Printf("register: %v", err)
		return &UserResponse{Errors: []FieldError{{
			Field:   "server",
			Message: "internal server error",
		}}}, nil
	}

	user, err := r.users.UserByID(p.Context, id)
	if err != nil {
		return nil, err
	}
	if err := r.session(p.Context).Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	usernameOrEmail := p.Args["usernameOrEmail"].(string)
	password := p.Args["password"].(string)

	key := "username"
	lookup := r.users.UserByUsername
	if strings.Contains(usernameOrEmail, "@") && utils.ValidateEmail(usernameOrEmail) {
		key = "email"
		lookup = r.users.UserByEmail
	}

	user, err := lookup(p.Context, usernameOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		return &UserResponse{Errors: []FieldError{{
			Field:   "usernameOrEmail",
			Message: utils.Capitalize(key) + " doesn't exists",
		}}}, nil
	}
	if err != nil {
		return nil, err
	}

	valid, err := utils.VerifyPassword(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !valid {
		return &UserResponse{Errors: []FieldError{{
			Field:   "password",
			Message: "Incorrect password",
		}}}, nil
	}

	if err := r.session(p.Context).Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func (r *Resolver) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	return r.session(p.Context).Logout(p.Context), nil
}

// resolveForgotPassword always reports true so the response never reveals
// whether an account exists; for a known address it stores a single-use
// reset token and mails the reset link. The mail round-trip is awaited
// within the mutation.
func (r *Resolver) resolveForgotPassword(p graphql.ResolveParams) (interface{}, error) {
	email := p.Args["email"].(string)

	user, err := r.users.UserByEmail(p.Context, email)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := r.sessions.SetResetToken(p.Context, token, user.ID); err != nil {
		return nil, err
	}

	link := fmt.Sprintf(`<a href="%s/change-password/%s">Reset your password</a>`, r.frontendURL, token)
	if err := r.mailer.Send(email, "Change password", link); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) resolveChangePassword(p graphql.ResolveParams) (interface{}, error) {
	token := p.Args["token"].(string)
	newPassword := p.Args["newPassword"].(string)

	if len(newPassword) <= 6 {
		return &UserResponse{Errors: []FieldError{{
			Field:   "newPassword",
			Message: "Password length must be greater than 6",
		}}}, nil
	}

	userID, ok, err := r.sessions.ResetTokenUserID(p.Context, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &UserResponse{Errors: []FieldError{{
			Field:   "token",
			Message: "Token expired",
		}}}, nil
	}

	user, err := r.users.UserByID(p.Context, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &UserResponse{Errors: []FieldError{{
			Field:   "token",
			Message: "User no longer exists",
		}}}, nil
	}
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := r.users.UpdateUserPassword(p.Context, user.ID, hash); err != nil {
		return nil, err
	}

	// single use: the token dies with the password change
	if err := r.sessions.DeleteResetToken(p.Context, token); err != nil {
		return nil, err
	}

	if err := r.session(p.Context).Login(p.Context, user.ID); err != nil {
		return nil, err
	}
	return &UserResponse{User: user}, nil
}

func validateRegister(opts RegisterInput) []FieldError {
	var errs []FieldError
	if !utils.ValidateEmail(opts.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Email not valid"})
	}
	if len(opts.Username) <= 3 {
		errs = append(errs, FieldError{Field: "username", Message: "Username length must be greater than 3"})
	}
	if opts.FirstName == "" {
		errs = append(errs, FieldError{Field: "firstName", Message: "First name length must be greater than 0"})
	}
	if opts.LastName == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name length must be greater than 0"})
	}
	if len(opts.Password) <= 6 {
		errs = append(errs, FieldError{Field: "password", Message: "Password length must be greater than 6"})
	}
	return errs
}

func registerInputFromArgs(args map[string]interface{}) RegisterInput {
	var opts RegisterInput
	if v, ok := args["email"].(string); ok {
		opts.Email = v
	}
	if v, ok := args["username"].(string); ok {
		opts.Username = v
	}
	if v, ok := args["password"].(string); ok {
		opts.Password = v
	}
	if v, ok := args["firstName"].(string); ok {
		opts.FirstName = v
	}
	if v, ok := args["lastName"].(string); ok {
		opts.LastName = v
	}
	return opts
}
