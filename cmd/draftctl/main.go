package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/the-draft/internal/export"
	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/repository"
	"github.com/debemdeboas/the-draft/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: draftctl [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  list                 List published posts")
	fmt.Fprintln(os.Stderr, "  export <id> [file]   Export a post as markdown (stdout by default)")
	flag.PrintDefaults()
}

func main() {
	dbPath := flag.String("db", "the-draft.db", "Path to the storage database")
	postsKey := flag.String("posts-key", "posts", "Store slot holding the post list")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		fmt.Println(errorStyle.Render("Error opening storage: " + err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	repo := repository.NewStorePostRepository(st, *postsKey)

	switch args[0] {
	case "list":
		listPosts(repo)
	case "export":
		if len(args) < 2 {
			usage()
			os.Exit(1)
		}
		output := "-"
		if len(args) > 2 {
			output = args[2]
		}
		exportPost(repo, model.PostID(args[1]), output)
	default:
		usage()
		os.Exit(1)
	}
}

func listPosts(repo repository.PostRepository) {
	posts := repo.List()
	if len(posts) == 0 {
		fmt.Println(metaStyle.Render("No published posts."))
		return
	}

	for _, post := range posts {
		fmt.Println(titleStyle.Render(post.Title))
		meta := fmt.Sprintf("  %s  %s", post.ID, post.CreatedDate.Format("2006-01-02 15:04"))
		if len(post.Tags) > 0 {
			meta += "  [" + joinTags(post.Tags) + "]"
		}
		fmt.Println(metaStyle.Render(meta))
	}
}

func joinTags(tags []string) string {
	out := ""
	for i, tag := range tags {
		if i > 0 {
			out += ", "
		}
		out += tag
	}
	return out
}

func exportPost(repo repository.PostRepository, id model.PostID, output string) {
	post, ok := repo.Get(id)
	if !ok {
		fmt.Println(errorStyle.Render("Post not found: " + string(id)))
		os.Exit(1)
	}

	md, err := export.Markdown(*post)
	if err != nil {
		fmt.Println(errorStyle.Render("Error exporting post: " + err.Error()))
		os.Exit(1)
	}

	if output == "-" {
		fmt.Print(md)
		return
	}

	if err := os.WriteFile(output, []byte(md), 0644); err != nil {
		fmt.Println(errorStyle.Render("Error writing file: " + err.Error()))
		os.Exit(1)
	}
	fmt.Println(metaStyle.Render("Exported " + string(id) + " to " + output))
}
