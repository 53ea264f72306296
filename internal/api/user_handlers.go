package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwell/inkwell-server/internal/dto"
)

const invalidUserID = "Invalid user ID format."

var userMessages = map[string]string{
	"name":  "Name and Email are required.",
	"email": "Name and Email are required.",
}

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns every user with their posts",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user and their posts",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/users",
		Summary:       "Create user",
		Description:   "Creates a user. The id is assigned by the server",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/{id}",
		Summary:     "Update user",
		Description: "Replaces a user's name and email",
		Tags:        []string{"Users"},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteUser",
		Method:        http.MethodDelete,
		Path:          "/api/v1/users/{id}",
		Summary:       "Delete user",
		Description:   "Deletes a user together with their posts",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteUser)
}

// UserIDInput identifies a user by path id.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body dto.UserRequest
}

// UpdateUserInput wraps the update user request for Huma.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body dto.UserRequest
}

// UserOutput wraps a single user for Huma.
type UserOutput struct {
	Body dto.User
}

// ListUsersOutput wraps a list of users for Huma.
type ListUsersOutput struct {
	Body []dto.User
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &ListUsersOutput{Body: users}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	id, err := parseID(input.ID, invalidUserID)
	if err != nil {
		return nil, err
	}

	u, err := s.services.User.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *u}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	if err := s.validator.ValidateWith(input.Body, userMessages); err != nil {
		return nil, err
	}

	u, err := s.services.User.CreateUser(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *u}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	id, err := parseID(input.ID, invalidUserID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateWith(input.Body, userMessages); err != nil {
		return nil, err
	}

	u, err := s.services.User.UpdateUser(ctx, id, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: *u}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *UserIDInput) (*struct{}, error) {
	id, err := parseID(input.ID, invalidUserID)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}
