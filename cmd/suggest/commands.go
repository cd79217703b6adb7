package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"autosuggest/internal/autocomplete"
	"autosuggest/internal/config"
	"autosuggest/internal/db"
	"autosuggest/internal/models"
	"autosuggest/internal/validation"
)

func searchCommand(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	client := autocomplete.NewClient(c.String("server"), nil)
	query := validation.NormalizeQuery(strings.Join(c.Args().Slice(), " "))
	resp, err := client.Fetch(ctx, query, validation.CoerceLimit(c.Int("limit")))
	if err != nil {
		return err
	}
	printSuggestions(os.Stdout, resp)
	return nil
}

// openDB connects to the admin database and applies pending migrations.
func openDB(c *cli.Context) (*db.DB, error) {
	url := c.String("database-url")
	database, err := db.New(c.Context, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(url); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

func seedCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	seed, err := config.LoadSeedFile(c.Args().First())
	if err != nil {
		return err
	}
	if seed == nil {
		return fmt.Errorf("seed file %s not found", c.Args().First())
	}

	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.SeedTerms(c.Context, seed)
	if err != nil {
		return err
	}
	fmt.Printf("Inserted %d of %d terms\n", n, seed.Len())
	return nil
}

func addCommand(c *cli.Context) error {
	term := validation.NormalizeTerm(strings.Join(c.Args().Slice(), " "))
	if ok, msg := validation.ValidateTerm(term); !ok {
		return fmt.Errorf("%s", msg)
	}
	if ok, msg := validation.ValidateImageRef(c.String("image-ref")); !ok {
		return fmt.Errorf("%s", msg)
	}
	if c.Int64("popularity") < 0 {
		return fmt.Errorf("popularity must not be negative")
	}

	t := &models.Term{Term: term, Popularity: c.Int64("popularity")}
	if d := c.String("description"); d != "" {
		t.Description = &d
	}
	if r := c.String("image-ref"); r != "" {
		t.ImageRef = &r
	}

	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.CreateTerm(c.Context, t); err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", t.Term, t.ID)
	return nil
}

func resetCommand(c *cli.Context) error {
	term := validation.NormalizeTerm(strings.Join(c.Args().Slice(), " "))
	if term == "" {
		return cli.ShowSubcommandHelp(c)
	}

	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.ResetPopularity(c.Context, term); err != nil {
		return err
	}
	fmt.Printf("Reset popularity of %s\n", term)
	return nil
}

func topCommand(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return err
	}
	defer database.Close()

	terms, err := database.TopTerms(c.Context, validation.CoerceLimit(c.Int("limit")))
	if err != nil {
		return err
	}
	printSuggestions(os.Stdout, &models.SearchResponse{Suggestions: models.Suggestions(terms)})
	return nil
}
