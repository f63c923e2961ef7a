package graph

import (
	"context"

	domain "github.com/milobedini/milife-backend/domain/task"
	graphql "github.com/graph-gophers/graphql-go"
)

// taskResolver resolves the Task type.
type taskResolver struct {
	root *Resolver
	task *domain.Task
}

func (r *taskResolver) ID() graphql.ID {
	return graphql.ID(r.task.ID)
}

func (r *taskResolver) Name() string {
	return r.task.Name
}

func (r *taskResolver) Description() *string {
	return r.task.Description
}

// Users lists the users who added this task to their list.
func (r *taskResolver) Users(ctx context.Context) ([]*userResolver, error) {
	found, err := r.root.tasks.UsersForTask(ctx, r.task.ID)
	if err != nil {
		return nil, translate(err)
	}

	resolvers := make([]*userResolver, 0, len(found))
	for _, user := range found {
		resolvers = append(resolvers, &userResolver{root: r.root, user: user})
	}
	return resolvers, nil
}

// Completions lists this task's completions across all users.
func (r *taskResolver) Completions(ctx context.Context) ([]*completionResolver, error) {
	found, err := r.root.tasks.CompletionsForTask(ctx, r.task.ID)
	if err != nil {
		return nil, translate(err)
	}
	return wrapCompletions(r.root, found), nil
}

// wrapTasks converts domain tasks into resolvers.
func wrapTasks(root *Resolver, found []*domain.Task) []*taskResolver {
	resolvers := make([]*taskResolver, 0, len(found))
	for _, task := range found {
		resolvers = append(resolvers, &taskResolver{root: root, task: task})
	}
	return resolvers
}
