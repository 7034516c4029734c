package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"leadscout/internal/browser"
	"leadscout/internal/cmdlog"
	"leadscout/internal/commentgen"
	"leadscout/internal/config"
	"leadscout/internal/keywords"
	"leadscout/internal/leadgen"
	"leadscout/internal/llm"
	"leadscout/internal/metrics"
	"leadscout/internal/model"
	"leadscout/internal/platform"
	"leadscout/internal/report"
	"leadscout/internal/reply"
	"leadscout/internal/store/actionlog"
	"leadscout/internal/theme"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "login":
		cmdLogin()
	case "search":
		cmdSearch()
	case "content":
		cmdContent()
	case "comments":
		cmdComments()
	case "keywords":
		cmdKeywords()
	case "comment":
		cmdComment()
	case "reply":
		cmdReply()
	case "analyze":
		cmdAnalyze()
	case "promote":
		cmdPromote()
	case "audit":
		cmdAudit()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: leadscout <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init      Create a config file at ./leadscout.yaml")
	fmt.Println("  login     Open a browser window to log in to the platform")
	fmt.Println("  search    Search posts for keywords")
	fmt.Println("  content   Fetch one post's content")
	fmt.Println("  comments  Fetch one post's comments")
	fmt.Println("  keywords  Generate search keywords for a product")
	fmt.Println("  comment   Generate a templated comment (optionally post it)")
	fmt.Println("  reply     Generate a reply to a comment (optionally send it)")
	fmt.Println("  analyze   Find and rank purchase-intent leads for a product")
	fmt.Println("  promote   Reply to matching comments for a product")
	fmt.Println("  audit     Show recent reply dispatch records")
}

func loadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = config.Default()
			cfg.ResolveEnv()
			return cfg
		}
		fmt.Println("error:", err)
		os.Exit(1)
	}
	return cfg
}

// deps bundles the runtime pieces most commands need. The browser and
// ledger are opened lazily by the helpers below, not here.
type deps struct {
	cfg     config.Config
	gateway llm.Gateway
	session *browser.Session
	plat    platform.Platform
}

func buildDeps(cfg config.Config) deps {
	if cfg.Metrics.Addr != "" {
		metrics.StartServer(cfg.Metrics.Addr)
	}
	session := browser.NewSession(cfg.Browser, browser.OpenChrome)
	reg := platform.NewRegistry(platform.NewReddit(session))
	plat, err := reg.Get(cfg.Platform.Name)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	return deps{cfg: cfg, gateway: llm.New(cfg.LLM), session: session, plat: plat}
}

func openLedger(cfg config.Config) *actionlog.DB {
	if cfg.Storage.DBPath == "" {
		return nil
	}
	db, err := actionlog.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Println("warning: action ledger unavailable:", err)
		return nil
	}
	return db
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./leadscout.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdLogin() {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	_ = fs.Parse(os.Args[2:])
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("login", func() error {
		msg, err := d.plat.Login(context.Background())
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		fmt.Println(msg)
		return nil
	})
}

func cmdSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	query := fs.String("q", "", "search keywords")
	limit := fs.Int("limit", 10, "max posts")
	_ = fs.Parse(os.Args[2:])
	if *query == "" {
		fmt.Println("error: -q is required")
		os.Exit(1)
	}
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("search", func() error {
		posts, err := d.plat.SearchPosts(context.Background(), *query, *limit)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		for _, p := range posts {
			fmt.Printf("%s\n  %s\n", p.Title, p.URL)
		}
		fmt.Printf("%d posts\n", len(posts))
		return nil
	})
}

func cmdContent() {
	fs := flag.NewFlagSet("content", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	url := fs.String("url", "", "post URL")
	_ = fs.Parse(os.Args[2:])
	if *url == "" {
		fmt.Println("error: -url is required")
		os.Exit(1)
	}
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("content", func() error {
		c, err := d.plat.GetPostContent(context.Background(), *url)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		fmt.Printf("Title:  %s\nAuthor: %s\nDate:   %s\n\n%s\n", c.Title, c.Author, c.PublishTime, c.Body)
		return nil
	})
}

func cmdComments() {
	fs := flag.NewFlagSet("comments", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	url := fs.String("url", "", "post URL")
	asJSON := fs.Bool("json", false, "emit JSON")
	_ = fs.Parse(os.Args[2:])
	if *url == "" {
		fmt.Println("error: -url is required")
		os.Exit(1)
	}
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("comments", func() error {
		comments, err := d.plat.GetPostComments(context.Background(), *url)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		if *asJSON {
			b, _ := json.MarshalIndent(comments, "", "  ")
			fmt.Println(string(b))
			return nil
		}
		for _, c := range comments {
			fmt.Printf("%s (%s)\n  %s\n", c.Username, c.Timestamp, c.Content)
		}
		fmt.Printf("%d comments\n", len(comments))
		return nil
	})
}

func cmdKeywords() {
	fs := flag.NewFlagSet("keywords", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	product := fs.String("product", "", "product description")
	_ = fs.Parse(os.Args[2:])
	if *product == "" {
		fmt.Println("error: -product is required")
		os.Exit(1)
	}
	cfg := loadConfig(*cfgPath)
	_ = cmdlog.Run("keywords", func() error {
		fmt.Println(keywords.Generate(context.Background(), llm.New(cfg.LLM), *product))
		return nil
	})
}

func cmdComment() {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	url := fs.String("url", "", "post URL (required with -post)")
	ctype := fs.String("type", "lead_gen", "comment type: lead_gen|like|consult|professional")
	title := fs.String("title", "", "post title used for domain detection")
	author := fs.String("author", "", "post author for salutation")
	post := fs.Bool("post", false, "post the comment instead of previewing")
	_ = fs.Parse(os.Args[2:])
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("comment", func() error {
		ctx := context.Background()
		t := *title
		if t == "" && *url != "" {
			if c, err := d.plat.GetPostContent(ctx, *url); err == nil {
				t = c.Title
				if *author == "" {
					*author = c.Author
				}
			}
		}
		domain := commentgen.DetectDomain(t, "")
		text := commentgen.New(nil).Render(commentgen.CommentType(*ctype), domain, *author, t)
		if !*post {
			fmt.Println(text)
			return nil
		}
		if *url == "" {
			fmt.Println("error: -url is required with -post")
			os.Exit(1)
		}
		if !d.plat.LoggedIn(ctx) {
			err := model.NotLoggedIn(d.plat.Name())
			fmt.Println("error:", err)
			return err
		}
		msg, err := d.plat.PostComment(ctx, *url, text)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		fmt.Println(msg)
		return nil
	})
}

func cmdReply() {
	fs := flag.NewFlagSet("reply", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	url := fs.String("url", "", "post URL (required with -send)")
	comment := fs.String("comment", "", "target comment text")
	product := fs.String("product", "", "product description")
	username := fs.String("user", "", "comment author for salutation")
	send := fs.Bool("send", false, "send the reply instead of previewing")
	_ = fs.Parse(os.Args[2:])
	if *comment == "" || *product == "" {
		fmt.Println("error: -comment and -product are required")
		os.Exit(1)
	}
	cfg := loadConfig(*cfgPath)
	_ = cmdlog.Run("reply", func() error {
		ctx := context.Background()
		text := reply.New(llm.New(cfg.LLM), nil).Generate(ctx, *comment, *product, *username)
		if !*send {
			fmt.Println(text)
			return nil
		}
		if *url == "" {
			fmt.Println("error: -url is required with -send")
			os.Exit(1)
		}
		d := buildDeps(cfg)
		defer d.session.Close()
		if !d.plat.LoggedIn(ctx) {
			err := model.NotLoggedIn(d.plat.Name())
			fmt.Println("error:", err)
			return err
		}
		msg, err := d.plat.ReplyToComment(ctx, *url, *comment, text)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		fmt.Println(msg)
		return nil
	})
}

func cmdAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	product := fs.String("product", "", "product description")
	kw := fs.String("keywords", "", "override derived keywords")
	maxPosts := fs.Int("max-posts", 0, "override max posts")
	asJSON := fs.Bool("json", false, "emit JSON leads")
	_ = fs.Parse(os.Args[2:])
	if *product == "" {
		fmt.Println("error: -product is required")
		os.Exit(1)
	}
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	_ = cmdlog.Run("analyze", func() error {
		orch := leadgen.New(d.plat, d.gateway, d.cfg, nil)
		leads, err := orch.Analyze(context.Background(), model.ProductQuery{
			Description: *product,
			Keywords:    *kw,
			MaxPosts:    *maxPosts,
		})
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		if *asJSON {
			b, _ := json.MarshalIndent(leads, "", "  ")
			fmt.Println(string(b))
			return nil
		}
		fmt.Print(report.RenderLeads(leads))
		return nil
	})
}

func cmdPromote() {
	fs := flag.NewFlagSet("promote", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	product := fs.String("product", "", "product description")
	kw := fs.String("keywords", "", "override derived keywords")
	maxPosts := fs.Int("max-posts", 0, "override max posts")
	minScore := fs.Float64("min-score", 0, "override min match score")
	_ = fs.Parse(os.Args[2:])
	if *product == "" {
		fmt.Println("error: -product is required")
		os.Exit(1)
	}
	d := buildDeps(loadConfig(*cfgPath))
	defer d.session.Close()
	ledger := openLedger(d.cfg)
	if ledger != nil {
		defer ledger.Close()
	}
	_ = cmdlog.Run("promote", func() error {
		orch := leadgen.New(d.plat, d.gateway, d.cfg, ledger)
		rep, err := orch.Promote(context.Background(), model.ProductQuery{
			Description:   *product,
			Keywords:      *kw,
			MaxPosts:      *maxPosts,
			MinMatchScore: *minScore,
		})
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		fmt.Print(report.RenderPromote(rep))
		return nil
	})
}

func cmdAudit() {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	cfgPath := fs.String("config", "./leadscout.yaml", "config path")
	limit := fs.Int("limit", 20, "records to show")
	_ = fs.Parse(os.Args[2:])
	cfg := loadConfig(*cfgPath)
	ledger := openLedger(cfg)
	if ledger == nil {
		fmt.Println("error: no action ledger configured")
		os.Exit(1)
	}
	defer ledger.Close()
	_ = cmdlog.Run("audit", func() error {
		rows, err := ledger.RecentReplyRecords(context.Background(), *limit)
		if err != nil {
			fmt.Println("error:", err)
			return err
		}
		for _, r := range rows {
			status := "sent"
			if !r.Success {
				status = "failed: " + r.FailureReason
			}
			fmt.Printf("%s [%5.1f] %s -> %s (%s)\n", r.TS.Format("2006-01-02 15:04"), r.MatchScore, r.Username, r.PostURL, status)
		}
		fmt.Printf("%d records\n", len(rows))
		return nil
	})
}
