package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sistema-academico/academico-console/internal/permission"
)

// Resources prints the navigation the current principal can see: every
// granted resource with its actions constitutes which console areas exist
// for the session. Display order is collated pt-BR by label; the registry
// itself keeps insertion order.
func (c *Console) Resources(ctx context.Context) error {
	resources := c.registry.AvailableResources()
	if len(resources) == 0 {
		fmt.Fprintln(c.out, "Nenhum recurso disponível.")
		return nil
	}

	sorted := append([]permission.Resource(nil), resources...)
	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(sorted, func(i, j int) bool {
		return col.CompareString(sorted[i].Label, sorted[j].Label) < 0
	})

	for _, res := range sorted {
		marker := " "
		if c.gate.Can(res.Name, permission.ActionRead) {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %-12s %-12s [%s]\n", marker, res.Name, res.Label, strings.Join(res.Actions, ", "))
	}
	fmt.Fprintln(c.out, "(* = navegável: recurso com permissão de leitura)")
	return nil
}

// Dashboard aggregates counts across the areas the principal can read,
// fetching them concurrently.
func (c *Console) Dashboard(ctx context.Context) error {
	var (
		users, courses, semesters int
		haveUsers                 = c.gate.Can("users", permission.ActionRead)
		haveCourses               = c.gate.Can("courses", permission.ActionRead)
		haveSemesters             = c.gate.Can("semesters", permission.ActionRead)
	)
	if !haveUsers && !haveCourses && !haveSemesters {
		fmt.Fprintln(c.out, "Nenhum indicador disponível para o seu papel.")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if haveUsers {
		g.Go(func() error {
			list, err := c.client.ListUsers(gctx)
			users = len(list)
			return err
		})
	}
	if haveCourses {
		g.Go(func() error {
			list, err := c.client.ListCourses(gctx)
			courses = len(list)
			return err
		})
	}
	if haveSemesters {
		g.Go(func() error {
			list, err := c.client.ListSemesters(gctx)
			semesters = len(list)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Painel")
	if haveUsers {
		fmt.Fprintf(c.out, "  Usuários:  %d\n", users)
	}
	if haveCourses {
		fmt.Fprintf(c.out, "  Cursos:    %d\n", courses)
	}
	if haveSemesters {
		fmt.Fprintf(c.out, "  Semestres: %d\n", semesters)
	}
	return nil
}
