package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

func itemsCommand() *cli.Command {
	return &cli.Command{
		Name:  "items",
		Usage: "Item commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List items, optionally filtered locally",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Value: "all", Usage: "exact type filter, 'all' keeps everything"},
					&cli.StringFlag{Name: "query", Usage: "case-insensitive substring filter"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []item
					if err := doItemsList(ctx, cfg, &out); err != nil {
						return err
					}
					out = filterItems(out, c.String("type"), c.String("query"))
					if c.Bool("json") {
						return printJSON(out)
					}
					printItems(out)
					return nil
				},
			},
			{
				Name:  "get",
				Usage: "Show one item",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out item
					if err := doItemsGet(ctx, cfg, c.Int64("id"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItemDetail(out)
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "Create an item",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "tags", Usage: "comma-joined tag list"},
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out item
					err = doItemsCreate(ctx, cfg, map[string]any{
						"type":        c.String("type"),
						"title":       c.String("title"),
						"content":     c.String("content"),
						"description": c.String("description"),
						"category":    c.String("category"),
						"tags":        c.String("tags"),
					}, &out)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItemDetail(out)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Replace every field of an item",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "type", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "tags"},
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out item
					err = doItemsUpdate(ctx, cfg, c.Int64("id"), map[string]any{
						"type":        c.String("type"),
						"title":       c.String("title"),
						"content":     c.String("content"),
						"description": c.String("description"),
						"category":    c.String("category"),
						"tags":        c.String("tags"),
					}, &out)
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItemDetail(out)
					return nil
				},
			},
			{
				Name:  "rm",
				Usage: "Delete an item",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out map[string]any
					if err := doItemsDelete(ctx, cfg, c.Int64("id"), &out); err != nil {
						return err
					}
					fmt.Printf("deleted item %d\n", c.Int64("id"))
					return nil
				},
			},
			{
				Name:      "search",
				Usage:     "Server-side substring search",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []item
					if err := doItemsSearch(ctx, cfg, c.Args().First(), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItems(out)
					return nil
				},
			},
			{
				Name:      "by-type",
				Usage:     "List items with an exact type match",
				ArgsUsage: "<type>",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []item
					if err := doItemsByType(ctx, cfg, c.Args().First(), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printItems(out)
					return nil
				},
			},
		},
	}
}

func typesCommand() *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "Type registry commands",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List types with item counts",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []itemType
					if err := doTypesList(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTypes(out)
					return nil
				},
			},
			{
				Name:  "names",
				Usage: "List registered type names",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "output raw JSON"}},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					var out []string
					if err := doTypeNames(ctx, cfg, &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					for _, name := range out {
						fmt.Println(name)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Register a type",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out itemType
					if err := doTypesCreate(ctx, cfg, c.Args().First(), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTypes([]itemType{out})
					return nil
				},
			},
			{
				Name:  "rename",
				Usage: "Rename a type and move its items",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
					&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out itemType
					if err := doTypesRename(ctx, cfg, c.Int64("id"), c.String("name"), &out); err != nil {
						return err
					}
					if c.Bool("json") {
						return printJSON(out)
					}
					printTypes([]itemType{out})
					return nil
				},
			},
			{
				Name:  "rm",
				Usage: "Delete an unused type",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.BoolFlag{Name: "force", Usage: "skip the local session check"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					if err := requireSession(&cfg, c.Bool("force")); err != nil {
						return err
					}
					var out map[string]any
					if err := doTypesDelete(ctx, cfg, c.Int64("id"), &out); err != nil {
						return err
					}
					fmt.Printf("deleted type %d\n", c.Int64("id"))
					return nil
				},
			},
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and store a local session record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transport", Value: "uds"},
			&cli.StringFlag{Name: "server", Value: "http://127.0.0.1:3001"},
			&cli.StringFlag{Name: "socket", Value: "/tmp/byteful.sock"},
			&cli.StringFlag{Name: "username", Value: "admin"},
			&cli.StringFlag{Name: "pin", Required: true},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := cliConfig{
				Transport: c.String("transport"),
				Server:    c.String("server"),
				Socket:    c.String("socket"),
			}
			var out struct {
				Authenticated bool `json:"authenticated"`
			}
			if err := doLogin(ctx, cfg, c.String("username"), c.String("pin"), &out); err != nil {
				return err
			}
			if !out.Authenticated {
				return fmt.Errorf("invalid credentials")
			}
			cfg.Session = sessionRecord{Authenticated: true, Timestamp: time.Now().UnixMilli()}
			if err := saveConfig(cfg); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", c.String("username"))
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Erase the local session record",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Session = sessionRecord{}
			if err := saveConfig(cfg); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show transport settings and session state",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			state := "logged out"
			if cfg.session().IsValid(time.Now()) {
				state = "logged in"
			} else if cfg.Session.Authenticated {
				state = "session expired"
			}
			printKV([][2]string{
				{"transport", cfg.Transport},
				{"server", cfg.Server},
				{"socket", cfg.Socket},
				{"session", state},
			})
			return nil
		},
	}
}
