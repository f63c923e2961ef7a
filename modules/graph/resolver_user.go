package graph

import (
	"context"

	domain "github.com/milobedini/milife-backend/domain/user"
	graphql "github.com/graph-gophers/graphql-go"
)

// userResolver resolves the User type. The password hash is deliberately
// not reachable from any field.
type userResolver struct {
	root *Resolver
	user *domain.User
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(r.user.ID)
}

func (r *userResolver) Name() string {
	return r.user.Name
}

func (r *userResolver) Email() string {
	return r.user.Email
}

// Tasks lists the tasks this user has added to their list.
func (r *userResolver) Tasks(ctx context.Context) ([]*taskResolver, error) {
	found, err := r.root.tasks.MyTasks(ctx, r.user.ID)
	if err != nil {
		return nil, translate(err)
	}
	return wrapTasks(r.root, found), nil
}

// Completions lists all completions recorded by this user.
func (r *userResolver) Completions(ctx context.Context) ([]*completionResolver, error) {
	found, err := r.root.tasks.CompletionsForUser(ctx, r.user.ID)
	if err != nil {
		return nil, translate(err)
	}
	return wrapCompletions(r.root, found), nil
}
