package cli

import (
	"context"
	"fmt"

	"github.com/sistema-academico/academico-console/internal/api"
	"github.com/sistema-academico/academico-console/internal/permission"
)

func (c *Console) ListCourses(ctx context.Context) error {
	if err := c.guard("courses", permission.ActionRead); err != nil {
		return err
	}
	courses, err := c.client.ListCourses(ctx)
	if err != nil {
		return err
	}
	for _, course := range courses {
		fmt.Fprintf(c.out, "%-38s %-10s %s\n", course.ID, course.Code, course.Name)
	}
	return nil
}

func (c *Console) ShowCourse(ctx context.Context, id string) error {
	if err := c.guard("courses", permission.ActionRead); err != nil {
		return err
	}
	detail, err := c.client.GetCourse(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s (%s)\n", detail.Name, detail.Code)
	if detail.CoordinatorName != "" {
		fmt.Fprintf(c.out, "Coordenador(a): %s\n", detail.CoordinatorName)
	}
	for _, s := range detail.Semesters {
		fmt.Fprintf(c.out, "  %-12s %s a %s\n", s.Code, s.StartDate, s.EndDate)
	}
	return nil
}

func (c *Console) CreateCourse(ctx context.Context, name, code, description string) error {
	if err := c.guard("courses", permission.ActionCreate); err != nil {
		return err
	}
	created, err := c.client.CreateCourse(ctx, api.Course{Name: name, Code: code, Description: description})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Curso criado: %s\n", created.ID)
	return nil
}

func (c *Console) UpdateCourse(ctx context.Context, id, name, code, description string) error {
	if err := c.guard("courses", permission.ActionUpdate); err != nil {
		return err
	}
	updated, err := c.client.UpdateCourse(ctx, id, api.Course{Name: name, Code: code, Description: description})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Curso atualizado: %s\n", updated.ID)
	return nil
}

func (c *Console) DeleteCourse(ctx context.Context, id string) error {
	if err := c.guard("courses", permission.ActionDelete); err != nil {
		return err
	}
	if err := c.client.DeleteCourse(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Curso excluído.")
	return nil
}

func (c *Console) ListSubjects(ctx context.Context, courseID, semesterID string) error {
	if err := c.guard("courses", permission.ActionRead); err != nil {
		return err
	}
	subjects, err := c.client.ListSubjects(ctx, courseID, semesterID)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Fprintf(c.out, "%-10s %-28s %d créditos  %s\n", s.Code, s.Name, s.Credits, s.TeacherName)
	}
	return nil
}
