package cli

import (
	"context"
	"fmt"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/permission"
)

func (c *Console) ListUsers(ctx context.Context) error {
	if err := c.guard("users", permission.ActionRead); err != nil {
		return err
	}
	users, err := c.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Fprintf(c.out, "%-38s %-24s %-24s %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return nil
}

func (c *Console) CreateUser(ctx context.Context, name, email, role, courseID string) error {
	if err := c.guard("users", permission.ActionCreate); err != nil {
		return err
	}
	created, err := c.client.CreateUser(ctx, api.User{Name: name, Email: email, Role: role, CourseID: courseID})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Usuário criado: %s\n", created.ID)
	return nil
}

func (c *Console) UpdateUser(ctx context.Context, id, name, email, role, courseID string) error {
	if err := c.guard("users", permission.ActionUpdate); err != nil {
		return err
	}
	updated, err := c.client.UpdateUser(ctx, id, api.User{Name: name, Email: email, Role: role, CourseID: courseID})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Usuário atualizado: %s\n", updated.ID)
	return nil
}

func (c *Console) DeleteUser(ctx context.Context, id string) error {
	if err := c.guard("users", permission.ActionDelete); err != nil {
		return err
	}
	if err := c.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Usuário excluído.")
	return nil
}
