package graph

import (
	"context"
	"time"

	domain "github.com/milobedini/milife-backend/domain/task"
	graphql "github.com/graph-gophers/graphql-go"
)

// completionResolver resolves the TaskCompletion type.
type completionResolver struct {
	root       *Resolver
	completion *domain.TaskCompletion
}

func (r *completionResolver) ID() graphql.ID {
	return graphql.ID(r.completion.ID)
}

// Date formats the completion date as YYYY-MM-DD.
func (r *completionResolver) Date() string {
	return r.completion.Date.Format(time.DateOnly)
}

func (r *completionResolver) Completed() bool {
	return r.completion.Completed
}

// User resolves the user who recorded this completion.
func (r *completionResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := r.root.users.FindByID(ctx, r.completion.UserID)
	if err != nil {
		return nil, translate(err)
	}
	return &userResolver{root: r.root, user: user}, nil
}

// Task resolves the task this completion belongs to.
func (r *completionResolver) Task(ctx context.Context) (*taskResolver, error) {
	task, err := r.root.tasks.Task(ctx, r.completion.TaskID)
	if err != nil {
		return nil, translate(err)
	}
	return &taskResolver{root: r.root, task: task}, nil
}

// wrapCompletions converts domain completions into resolvers.
func wrapCompletions(root *Resolver, found []*domain.TaskCompletion) []*completionResolver {
	resolvers := make([]*completionResolver, 0, len(found))
	for _, completion := range found {
		resolvers = append(resolvers, &completionResolver{root: root, completion: completion})
	}
	return resolvers
}
