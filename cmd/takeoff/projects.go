package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"takeoff/internal/config"
	"takeoff/internal/store"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect saved projects",
	}
	cmd.AddCommand(projectsListCmd())
	cmd.AddCommand(projectsShowCmd())
	cmd.AddCommand(projectsArticlesCmd())
	cmd.AddCommand(projectsDeleteCmd())
	return cmd
}

func withStore(fn func(ctx context.Context, db store.Store) error) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig("takeoff.yaml")
	if err != nil {
		return err
	}
	if cfg.Database == "" {
		return fmt.Errorf("no database configured in takeoff.yaml")
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}
	return fn(ctx, db)
}

func projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db store.Store) error {
				projects, err := db.ListProjects(ctx)
				if err != nil {
					return err
				}
				for _, p := range projects {
					fmt.Fprintf(os.Stdout, "%s  %d files  %d articles  %s\n",
						p.Name, p.FileCount, p.ArticleCount, p.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func projectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db store.Store) error {
				rec, err := db.GetProject(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(rec.Document))
				return nil
			})
		},
	}
}

func projectsArticlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "articles <name>",
		Short: "List a saved project's articles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db store.Store) error {
				articles, err := db.ListArticles(ctx, args[0])
				if err != nil {
					return err
				}
				for _, a := range articles {
					fmt.Fprintf(os.Stdout, "%s  %-40s %10.2f %s\n", a.Code, a.Description, a.Quantity, a.Unit)
				}
				return nil
			})
		},
	}
}

func projectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, db store.Store) error {
				n, err := db.DeleteProject(ctx, args[0])
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("project %s not found", args[0])
				}
				fmt.Fprintf(os.Stdout, "Deleted project %s.\n", args[0])
				return nil
			})
		},
	}
}
