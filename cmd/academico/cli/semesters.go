package cli

import (
	"context"
	"fmt"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/permission"
)

func (c *Console) ListSemesters(ctx context.Context) error {
	if err := c.guard("semesters", permission.ActionRead); err != nil {
		return err
	}
	semesters, err := c.client.ListSemesters(ctx)
	if err != nil {
		return err
	}
	for _, s := range semesters {
		fmt.Fprintf(c.out, "%-38s %-10s %-24s %s a %s\n", s.ID, s.Code, s.CourseName, s.StartDate, s.EndDate)
	}
	return nil
}

func (c *Console) CreateSemester(ctx context.Context, code, courseID, start, end string) error {
	if err := c.guard("semesters", permission.ActionCreate); err != nil {
		return err
	}
	created, err := c.client.CreateSemester(ctx, api.Semester{Code: code, CourseID: courseID, StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Semestre criado: %s\n", created.ID)
	return nil
}

func (c *Console) UpdateSemester(ctx context.Context, id, code, courseID, start, end string) error {
	if err := c.guard("semesters", permission.ActionUpdate); err != nil {
		return err
	}
	updated, err := c.client.UpdateSemester(ctx, id, api.Semester{Code: code, CourseID: courseID, StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Semestre atualizado: %s\n", updated.ID)
	return nil
}

func (c *Console) DeleteSemester(ctx context.Context, id string) error {
	if err := c.guard("semesters", permission.ActionDelete); err != nil {
		return err
	}
	if err := c.client.DeleteSemester(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Semestre excluído.")
	return nil
}
