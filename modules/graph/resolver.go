package graph

import (
	"context"
	"errors"

	"github.com/milobedini/milife-backend/modules/auth"
	"github.com/milobedini/milife-backend/modules/tasks"
	graphql "github.com/graph-gophers/graphql-go"
)

// Resolver is the root resolver. Query and Mutation fields are methods on
// it; object fields live on the per-type wrappers below it.
type Resolver struct {
	auth  *auth.Service
	tasks *tasks.Service
	users auth.UserStore
}

// NewResolver creates the root resolver.
func NewResolver(authService *auth.Service, taskService *tasks.Service, users auth.UserStore) *Resolver {
	return &Resolver{
		auth:  authService,
		tasks: taskService,
		users: users,
	}
}

// filterInput mirrors the FilterInput input type.
type filterInput struct {
	Field string
	Op    string
	Value string
}

// toFilters converts GraphQL filter arguments to the service filter type.
func toFilters(inputs *[]filterInput) []tasks.Filter {
	if inputs == nil {
		return nil
	}
	filters := make([]tasks.Filter, 0, len(*inputs))
	for _, in := range *inputs {
		filters = append(filters, tasks.Filter{
			Field: in.Field,
			Op:    tasks.FilterOp(in.Op),
			Value: in.Value,
		})
	}
	return filters
}

// Me returns the current user.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &userResolver{root: r, user: user}, nil
}

// AllTasks lists catalog tasks, optionally filtered.
func (r *Resolver) AllTasks(ctx context.Context, args struct{ Filters *[]filterInput }) ([]*taskResolver, error) {
	found, err := r.tasks.AllTasks(ctx, toFilters(args.Filters))
	if err != nil {
		return nil, translate(err)
	}
	return wrapTasks(r, found), nil
}

// Task looks up a single catalog task. An absent task resolves to null
// rather than an error.
func (r *Resolver) Task(ctx context.Context, args struct{ ID graphql.ID }) (*taskResolver, error) {
	found, err := r.tasks.Task(ctx, string(args.ID))
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			return nil, nil
		}
		return nil, translate(err)
	}
	return &taskResolver{root: r, task: found}, nil
}

// MyTasks lists the tasks on the current user's list.
func (r *Resolver) MyTasks(ctx context.Context) ([]*taskResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	found, err := r.tasks.MyTasks(ctx, user.ID)
	if err != nil {
		return nil, translate(err)
	}
	return wrapTasks(r, found), nil
}

// MyTaskCompletions lists the current user's completions, optionally
// scoped to one task and an inclusive date range.
func (r *Resolver) MyTaskCompletions(ctx context.Context, args struct {
	TaskID    *graphql.ID
	StartDate *string
	EndDate   *string
}) ([]*completionResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var taskID *string
	if args.TaskID != nil {
		id := string(*args.TaskID)
		taskID = &id
	}

	found, err := r.tasks.MyTaskCompletions(ctx, user.ID, taskID, args.StartDate, args.EndDate)
	if err != nil {
		return nil, translate(err)
	}
	return wrapCompletions(r, found), nil
}

// Signup registers a new account.
func (r *Resolver) Signup(ctx context.Context, args struct {
	Name     string
	Email    string
	Password string
}) (*userResolver, error) {
	user, err := r.auth.Signup(ctx, args.Name, args.Email, args.Password)
	if err != nil {
		return nil, translate(err)
	}
	return &userResolver{root: r, user: user}, nil
}

// Login verifies credentials and returns a bearer token with the user.
func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (*authPayloadResolver, error) {
	token, user, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, translate(err)
	}
	return &authPayloadResolver{
		token: token,
		user:  &userResolver{root: r, user: user},
	}, nil
}

// CreateTask inserts a new catalog task. Requires authentication.
func (r *Resolver) CreateTask(ctx context.Context, args struct {
	Name        string
	Description *string
}) (*taskResolver, error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	task, err := r.tasks.CreateTask(ctx, args.Name, args.Description)
	if err != nil {
		return nil, translate(err)
	}
	return &taskResolver{root: r, task: task}, nil
}

// AddMyTask adds a catalog task to the current user's list.
func (r *Resolver) AddMyTask(ctx context.Context, args struct{ TaskID graphql.ID }) (*taskResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	task, err := r.tasks.AddMyTask(ctx, user.ID, string(args.TaskID))
	if err != nil {
		return nil, translate(err)
	}
	return &taskResolver{root: r, task: task}, nil
}

// RemoveMyTask removes a task from the current user's list, deleting its
// completions as well.
func (r *Resolver) RemoveMyTask(ctx context.Context, args struct{ TaskID graphql.ID }) (*taskResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	task, err := r.tasks.RemoveMyTask(ctx, user.ID, string(args.TaskID))
	if err != nil {
		return nil, translate(err)
	}
	return &taskResolver{root: r, task: task}, nil
}

// CompleteTask records a completion for the given date.
func (r *Resolver) CompleteTask(ctx context.Context, args struct {
	TaskID graphql.ID
	Date   string
}) (*completionResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	completion, err := r.tasks.CompleteTask(ctx, user.ID, string(args.TaskID), args.Date)
	if err != nil {
		return nil, translate(err)
	}
	return &completionResolver{root: r, completion: completion}, nil
}

// UncompleteTask deletes the completion recorded for the given date.
func (r *Resolver) UncompleteTask(ctx context.Context, args struct {
	TaskID graphql.ID
	Date   string
}) (*messageResolver, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.tasks.UncompleteTask(ctx, user.ID, string(args.TaskID), args.Date); err != nil {
		return nil, translate(err)
	}
	return &messageResolver{message: "Task uncompleted"}, nil
}

// authPayloadResolver resolves the AuthPayload type.
type authPayloadResolver struct {
	token string
	user  *userResolver
}

func (r *authPayloadResolver) Token() string {
	return r.token
}

func (r *authPayloadResolver) User() *userResolver {
	return r.user
}

// messageResolver resolves the Message type.
type messageResolver struct {
	message string
}

func (r *messageResolver) Message() string {
	return r.message
}
