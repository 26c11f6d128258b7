package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/debemdeboas/the-draft/internal/export"
	"github.com/debemdeboas/the-draft/internal/model"
	"github.com/debemdeboas/the-draft/internal/render"
	"github.com/debemdeboas/the-draft/internal/repository"
	"github.com/debemdeboas/the-draft/internal/store"
)

// main is the entry point of the script, parsing flags and orchestrating the import.
func main() {
	// Define command-line flags
	path := flag.String("path", "", "Path to the directory containing .md files")
	dbPath := flag.String("db", "the-draft.db", "Path to the storage database")
	postsKey := flag.String("posts-key", "posts", "Store slot holding the post list")
	flag.Parse()

	// Validate required flags
	if *path == "" {
		log.Fatal("The --path flag is required")
	}

	st, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("Error opening storage %s: %v", *dbPath, err)
	}
	defer st.Close()

	repo := repository.NewStorePostRepository(st, *postsKey)

	// Read all files from the specified directory
	files, err := os.ReadDir(*path)
	if err != nil {
		log.Fatalf("Error reading directory %s: %v", *path, err)
	}

	// Process each .md file
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".md") {
			err := processFile(*path, file, repo)
			if err != nil {
				log.Printf("Error processing file %s: %v", file.Name(), err)
				continue
			}
			log.Printf("Successfully published post from file: %s", file.Name())
		}
	}
}

// processFile publishes a single .md file into the post list.
func processFile(dirPath string, file os.DirEntry, repo repository.PostRepository) error {
	filePath := filepath.Join(dirPath, file.Name())

	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	// Determine the title: use front matter if available, otherwise use the file name
	title := strings.TrimSuffix(file.Name(), ".md")
	var tags []string
	body := content
	if fm, err := export.ParseFrontMatter(content); err == nil {
		if fm.Title != "" {
			title = fm.Title
		}
		tags = fm.Tags
		body = content[fm.Consumed:]
	}

	doc := render.MarkdownToDocument(body)
	serialized, err := doc.JSON()
	if err != nil {
		return err
	}

	_, err = repo.Publish(model.Draft{
		Title:   title,
		Content: serialized,
		Tags:    tags,
	})
	return err
}
