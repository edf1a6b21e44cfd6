// Command scenecheck loads every scenario description and resolves the
// models it references, reporting what each file contains.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/milk9111/vrviewer/assets"
	"github.com/milk9111/vrviewer/scenes"
)

var scenarioFiles = []string{"menu.yaml", "house.yaml", "character.yaml"}

type report struct {
	scenario string
	path     string
	model    *assets.Model
	err      error
}

func check(ctx context.Context, loader assets.Loader, files []string) ([]report, error) {
	var out []report
	for _, file := range files {
		sc, err := scenes.LoadScenario(file)
		if err != nil {
			return nil, err
		}
		for _, m := range sc.Models {
			paths := []string{m.Path}
			if m.Animation != nil && m.Animation.Path != "" {
				paths = append(paths, m.Animation.Path)
			}
			for _, p := range paths {
				model, err := loader.Load(ctx, p)
				out = append(out, report{scenario: file, path: p, model: model, err: err})
			}
		}
	}
	return out, nil
}

func main() {
	root := flag.String("models", "models", "directory the model files are resolved against")
	timeout := flag.Duration("timeout", 30*time.Second, "give up after this long")
	flag.Parse()

	files := scenarioFiles
	if flag.NArg() > 0 {
		files = flag.Args()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reports, err := check(ctx, assets.NewFileLoader(*root), files)
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, r := range reports {
		if r.err != nil {
			failed++
			fmt.Printf("%-16s %-32s FAIL %v\n", r.scenario, r.path, r.err)
			continue
		}
		fmt.Printf("%-16s %-32s %s meshes=%d animations=%v bytes=%d\n",
			r.scenario, r.path, r.model.Format, r.model.Meshes, r.model.Animations, r.model.Size)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
