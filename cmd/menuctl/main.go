// Command menuctl is a small admin tool for the menu API.
//
//	menuctl [-api URL] [-token TOKEN] <command> [flags]
//
// Commands: login, items, bulk-update, bulk-delete, toggle-offer, upload.
// The token can also come from MENUCTL_TOKEN.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"cordonbleu-backend/internal/client"
	"cordonbleu-backend/internal/menu"
)

func main() {
	apiURL := flag.String("api", envOr("MENUCTL_API", "http://localhost:5000"), "API base URL")
	token := flag.String("token", os.Getenv("MENUCTL_TOKEN"), "bearer token from 'menuctl login'")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	app := &cli{
		api:     client.New(*apiURL),
		session: &client.Session{Token: *token},
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	if err := app.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "menuctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: menuctl [-api URL] [-token TOKEN] <login|items|bulk-update|bulk-delete|toggle-offer|upload> [flags]")
	flag.PrintDefaults()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type cli struct {
	api     *client.Client
	session *client.Session
	in      *bufio.Reader
	out     io.Writer
}

func (a *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "items":
		return a.items(ctx, args)
	case "bulk-update":
		return a.bulkUpdate(ctx, args)
	case "bulk-delete":
		return a.bulkDelete(ctx, args)
	case "toggle-offer":
		return a.toggleOffer(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	user := fs.String("user", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := a.api.Login(ctx, *user, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s (%s)\n%s\n", s.User.Username, s.User.Role, s.Token)
	return nil
}

func (a *cli) items(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	category := fs.String("category", "", "show the public items of this category")
	search := fs.String("search", "", "server-side search text")
	activeOnly := fs.Bool("active", false, "only active items")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *category != "" {
		view, err := a.api.FetchMenu(ctx)
		if err != nil {
			return err
		}
		printItems(a.out, view.Select(*category))
		return nil
	}

	q := url.Values{}
	if *search != "" {
		q.Set("search", *search)
	}
	if *activeOnly {
		q.Set("active", "true")
	}
	items, err := a.api.ListMenuItems(ctx, q)
	if err != nil {
		return err
	}
	printItems(a.out, items)
	return nil
}

func (a *cli) bulkUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bulk-update", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma separated item ids")
	set := fs.String("set", "", "comma separated field=value pairs, e.g. active=false,price=12.5")
	if err := fs.Parse(args); err != nil {
		return err
	}

	itemIDs, err := parseIDs(*ids)
	if err != nil {
		return err
	}
	patch, err := parseAssignments(*set)
	if err != nil {
		return err
	}

	n, err := a.api.BulkUpdate(ctx, a.session, itemIDs, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %d of %d items\n", n, len(itemIDs))
	return nil
}

func (a *cli) bulkDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bulk-delete", flag.ContinueOnError)
	ids := fs.String("ids", "", "comma separated item ids")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	itemIDs, err := parseIDs(*ids)
	if err != nil {
		return err
	}

	confirm := func(n int) bool {
		if *yes {
			return true
		}
		fmt.Fprintf(a.out, "Permanently delete %d menu items? [y/N] ", n)
		answer, _ := a.in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}

	n, err := a.api.BulkDelete(ctx, a.session, itemIDs, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d of %d items\n", n, len(itemIDs))
	return nil
}

func (a *cli) toggleOffer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("toggle-offer", flag.ContinueOnError)
	id := fs.Uint("id", 0, "special offer id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	offer, err := a.api.ToggleOffer(ctx, a.session, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is now active=%t\n", offer.Title, offer.Active)
	return nil
}

func (a *cli) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	path := fs.String("file", "", "image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	stored, err := a.api.UploadImage(ctx, a.session, *path, f)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, stored)
	return nil
}

func printItems(w io.Writer, items []menu.ItemResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tACTIVE")
	for _, it := range items {
		category := "-"
		if it.Category != nil {
			category = it.Category.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\n", it.ID, it.Name, category, it.DisplayPrice, it.Active)
	}
	tw.Flush()
}
