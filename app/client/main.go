package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"quill-blog-engine/app/client/editor"
	"quill-blog-engine/app/client/gateway"
	"quill-blog-engine/app/client/inits"
	"quill-blog-engine/app/client/models"
	"quill-blog-engine/app/client/session"
	"quill-blog-engine/app/client/tokenstore"
	"quill-blog-engine/app/client/views"
	"quill-blog-engine/delta"
)

// 终端前端：所有行为都在 editor / views / gateway / session 包里，
// 这里只做命令分发
type cli struct {
	in       *bufio.Scanner
	tokens   tokenstore.Store
	gw       *gateway.Gateway
	ctrl     *editor.Controller
	router   *views.Router
	widget   *editor.MemoryWidget
	title    *editor.MemorySurface
	subtitle *editor.MemorySurface
}

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	tokens := tokenstore.NewFileStore(cfg.TokenPath)
	gw := gateway.New(gateway.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.Timeout,
	}, l, tokens)

	widget := editor.NewMemoryWidget()
	title := &editor.MemorySurface{}
	subtitle := &editor.MemorySurface{}
	ctrl := editor.NewController(l, gw, widget, title, subtitle)
	router := views.NewRouter(l, gw, ctrl)

	// 本地令牌还有效就直接恢复会话
	if user := session.Current(tokens); user != nil {
		ctrl.SetUser(user.Username)
		fmt.Printf("Welcome back, %s!\n", user.Username)
	}

	router.GoEditor()
	if err := ctrl.LoadInitial(context.Background()); err != nil {
		fmt.Println("Could not reach the server:", err)
	}

	c := &cli{
		in:       bufio.NewScanner(os.Stdin),
		tokens:   tokens,
		gw:       gw,
		ctrl:     ctrl,
		router:   router,
		widget:   widget,
		title:    title,
		subtitle: subtitle,
	}
	c.run()
}

func (c *cli) run() {
	c.show()

	for {
		fmt.Printf("[%s] > ", c.router.Current())
		if !c.in.Scan() {
			return
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		cmd, arg, _ := strings.Cut(line, " ")
		ctx := context.Background()

		switch cmd {
		case "login":
			c.auth(ctx, false)
		case "register":
			c.auth(ctx, true)
		case "logout":
			c.logout()
		case "home":
			list, err := c.router.GoHome(ctx)
			c.printList(list, err)
		case "stories":
			c.stories(ctx)
		case "open":
			c.open(ctx, arg)
		case "new":
			c.router.GoEditor()
			if err := c.ctrl.NewArticle(); err != nil {
				fmt.Println(err)
			} else {
				c.show()
			}
		case "next":
			c.router.GoEditor()
			if err := c.ctrl.Next(ctx); err != nil {
				fmt.Println("Could not load articles:", err)
			} else {
				c.show()
			}
		case "prev":
			c.router.GoEditor()
			if err := c.ctrl.Previous(ctx); err != nil {
				fmt.Println("Could not load articles:", err)
			} else {
				c.show()
			}
		case "title":
			c.title.Type(arg)
			c.ctrl.OnTitleInput()
		case "subtitle":
			c.subtitle.Type(arg)
			c.ctrl.OnSubtitleInput()
		case "write":
			c.write()
		case "show":
			c.show()
		case "save":
			c.save(ctx)
		case "delete":
			c.remove(ctx)
		case "help":
			c.help()
		case "quit", "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list.")
		}
	}
}

func (c *cli) auth(ctx context.Context, register bool) {
	fmt.Print("Username: ")
	if !c.in.Scan() {
		return
	}
	username := strings.TrimSpace(c.in.Text())

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("Could not read password:", err)
		return
	}

	var res *gateway.AuthResult
	if register {
		res, err = c.gw.Register(ctx, username, string(password))
	} else {
		res, err = c.gw.Login(ctx, username, string(password))
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	c.ctrl.SetUser(res.User.Username)
	fmt.Println(res.Message)
}

func (c *cli) logout() {
	if err := session.Logout(c.tokens); err != nil {
		fmt.Println("Logout failed:", err)
		return
	}

	c.ctrl.SetUser("")
	fmt.Println("Logged out.")
}

func (c *cli) stories(ctx context.Context) {
	user := session.Current(c.tokens)
	if user == nil {
		fmt.Println("Please log in to view your stories.")
		return
	}

	list, err := c.router.GoStories(ctx, user.Username)
	c.printList(list, err)
}

func (c *cli) open(ctx context.Context, arg string) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: open <id>")
		return
	}

	c.router.GoEditor()
	if err := c.ctrl.Load(ctx, uint(id)); err != nil {
		fmt.Println("Could not load article:", err)
		return
	}

	c.show()
}

// write 逐行读入正文，单独一行 . 结束
func (c *cli) write() {
	fmt.Println("Enter the article body. Finish with a single '.' on its own line.")

	var lines []string
	for c.in.Scan() {
		line := c.in.Text()
		if line == "." {
			break
		}
		lines = append(lines, line)
	}

	c.widget.SetContents(delta.FromText(strings.Join(lines, "\n")))
	c.ctrl.OnContentChange()
}

func (c *cli) save(ctx context.Context) {
	if !c.ctrl.CanSave() {
		fmt.Println("Nothing to save here.")
		return
	}

	isNew := c.ctrl.CurrentID() == 0
	if err := c.ctrl.Save(ctx); err != nil {
		fmt.Println("Save failed:", err)
		return
	}

	if isNew {
		fmt.Printf("Blog published successfully! (id %d)\n", c.ctrl.CurrentID())
	} else {
		fmt.Println("Blog updated successfully!")
	}
}

func (c *cli) remove(ctx context.Context) {
	if c.ctrl.CurrentID() == 0 {
		fmt.Println("No saved article is open.")
		return
	}

	fmt.Print("Delete this article? (y/N) ")
	if !c.in.Scan() || strings.ToLower(strings.TrimSpace(c.in.Text())) != "y" {
		return
	}

	if err := c.ctrl.Delete(ctx); err != nil {
		fmt.Println("Delete failed:", err)
		return
	}

	fmt.Println("Article deleted.")
}

func (c *cli) printList(list []models.Article, err error) {
	if err != nil {
		fmt.Println("Could not load articles:", err)
		return
	}

	if len(list) == 0 {
		fmt.Println("No articles yet.")
		return
	}

	for _, a := range list {
		fmt.Printf("%4d  %-30s  by %-15s  %s\n",
			a.ID, a.Title, a.Author, a.SortTime().Format("2006-01-02 15:04"))
	}
}

func (c *cli) show() {
	if c.ctrl.State() != editor.StateReady {
		fmt.Println("(editor is still loading)")
		return
	}

	if c.ctrl.CurrentID() == 0 {
		fmt.Println("-- new article --")
	} else {
		fmt.Printf("-- article %d by %s --\n", c.ctrl.CurrentID(), c.ctrl.Author())
	}
	fmt.Println("Title:   ", c.ctrl.Title())
	fmt.Println("Subtitle:", c.ctrl.Subtitle())

	if text := strings.TrimRight(c.ctrl.Doc().Text(), "\n"); text != "" {
		fmt.Println(text)
	}
}

func (c *cli) help() {
	fmt.Println(`Commands:
  login / register    authenticate against the server
  logout              drop the local session token
  home                list all articles
  stories             list your own articles
  open <id>           open an article in the editor
  new                 start a blank article
  next / prev         cycle through articles
  title <text>        set the title
  subtitle <text>     set the subtitle
  write               enter the body, '.' ends input
  show                print the open article
  save                publish or update
  delete              delete the open article
  quit                leave`)
}
