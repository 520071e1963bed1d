package main

import (
	"context"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/proxyparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaKey = "schema"
	outKey    = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate typed accessor facades over reactive records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  schemaKey,
				Usage: "Record schema file to read",
				Value: "typed/schema.yaml",
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Generated file to write",
				Value: "typed/typed.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for typed records started")
	defer func() {
		log.Printf("Codegen for typed records finished in %v", time.Since(start))
	}()

	raw, err := os.ReadFile(cmd.String(schemaKey))
	if err != nil {
		return err
	}
	var schema templates.Schema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return err
	}
	if err := schema.Validate(); err != nil {
		return err
	}
	log.Printf("Generating %d record facades for package %s", len(schema.Records), schema.Package)

	contents := templates.RecordsGen(schema)
	formatted, err := format.Source([]byte(contents))
	if err != nil {
		return err
	}
	return os.WriteFile(cmd.String(outKey), formatted, 0644)
}
