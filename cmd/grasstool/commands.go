package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gtgrass/internal/assetstore"
	"github.com/Faultbox/gtgrass/internal/config"
	"github.com/Faultbox/gtgrass/internal/logger"
	"github.com/Faultbox/gtgrass/internal/persist"
	"github.com/Faultbox/gtgrass/pkg/grass"
	"github.com/Faultbox/gtgrass/pkg/picking"
)

// session wires a painter over world to the configured asset store.
func session(cfg *config.Config, world *picking.World) (*grass.Painter, *persist.Bridge) {
	painter, err := grass.NewPainter(cfg.Brush, world)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	seed := cfg.Data.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	painter.SetRand(grass.NewRand(seed))

	store := assetstore.NewFileStore(cfg.Data.AssetsRoot)
	return painter, persist.NewBridge(store, painter)
}

func cmdInit(args []string) {
	cfg, fs := setup("init", args)
	defer logger.Sync()
	if fs.NArg() < 1 {
		fatalf("Usage: grasstool init <name> [folder]\n")
	}
	name := fs.Arg(0)
	folder := cfg.Data.Folder
	if fs.NArg() > 1 {
		folder = fs.Arg(1)
	}

	_, bridge := session(cfg, picking.NewWorld())
	if err := bridge.Initialize(name, folder); err != nil {
		fatalf("Error: %v\n", err)
	}
	fmt.Printf("Created %s\n", bridge.Key())
}

func cmdPaint(args []string) {
	cfg, fs := setup("paint", args)
	defer logger.Sync()
	if fs.NArg() < 2 {
		fatalf("Usage: grasstool paint <record> <script.yaml>\n")
	}

	script, err := LoadScript(fs.Arg(1))
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	painter, bridge := session(cfg, script.World())
	if err := bridge.Open(fs.Arg(0)); err != nil {
		fatalf("Error: %v\n", err)
	}

	uploads := 0
	log := logger.Named("paint")
	painter.SetSink(grass.MeshSinkFunc(func(b *grass.Buffers) {
		uploads++
		log.Debug("mesh updated", zap.Int("stroke", uploads), zap.Int("vertices", b.VertexCount()))
	}))
	stats, err := script.Run(painter)
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	if err := bridge.Save(); err != nil {
		fatalf("Error: %v\n", err)
	}

	fmt.Printf("Strokes:   %d (add %d, remove %d, edit %d)\n",
		stats.Total(), stats[grass.ModeAdd], stats[grass.ModeRemove], stats[grass.ModeEdit])
	fmt.Printf("Cells:     %d\n", painter.CellCount())
	fmt.Printf("Vertices:  %d / %d\n", painter.VertexCount(), cfg.Brush.GrassLimit)
	fmt.Printf("Triangles: %d\n", painter.TriangleCount())
	fmt.Printf("Uploads:   %d\n", uploads)
}

func cmdInfo(args []string) {
	cfg, fs := setup("info", args)
	defer logger.Sync()
	if fs.NArg() < 1 {
		fatalf("Usage: grasstool info <record>\n")
	}
	key := fs.Arg(0)

	store := assetstore.NewFileStore(cfg.Data.AssetsRoot)
	data, err := store.LoadData(key)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	fmt.Printf("Record: %s\n", key)
	fmt.Printf("Name:   %s\n", data.Name)
	fmt.Printf("ID:     %s\n", data.ID)
	fmt.Printf("Mesh:   %s\n", data.MeshKey)
	fmt.Printf("Cells:  %d\n", len(data.Cells))

	mesh, err := store.LoadMesh(data.MeshKey)
	if err != nil {
		fmt.Printf("Mesh missing: %v\n", err)
		return
	}
	fmt.Printf("Vertices:  %d\n", mesh.VertexCount())
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount())

	sizes := make(map[int]int)
	for _, c := range data.Cells {
		sizes[len(c.Vertices)]++
	}
	fmt.Println()
	fmt.Println("Cells by size:")
	for n := 7; n >= 1; n-- {
		if sizes[n] > 0 {
			fmt.Printf("  %d vertices: %d\n", n, sizes[n])
		}
	}
}

func cmdValidate(args []string) {
	cfg, fs := setup("validate", args)
	defer logger.Sync()
	if fs.NArg() < 1 {
		fatalf("Usage: grasstool validate <record>\n")
	}

	painter, bridge := session(cfg, picking.NewWorld())
	if err := bridge.Open(fs.Arg(0)); err != nil {
		fatalf("Invalid: %v\n", err)
	}
	if err := painter.Validate(); err != nil {
		fatalf("Invalid: %v\n", err)
	}
	fmt.Printf("OK: %d cells, %d vertices, %d triangles\n",
		painter.CellCount(), painter.VertexCount(), painter.TriangleCount())
}

func cmdCopy(args []string) {
	cfg, fs := setup("copy", args)
	defer logger.Sync()
	if fs.NArg() < 1 {
		fatalf("Usage: grasstool copy <record>\n")
	}

	_, bridge := session(cfg, picking.NewWorld())
	if err := bridge.Open(fs.Arg(0)); err != nil {
		fatalf("Error: %v\n", err)
	}
	record, mesh, err := bridge.SaveCopy(time.Now())
	if err != nil {
		fatalf("Error: %v\n", err)
	}
	fmt.Printf("Record: %s\n", record)
	fmt.Printf("Mesh:   %s\n", mesh)
}

func cmdWatch(args []string) {
	cfg, _ := setup("watch", args)
	defer logger.Sync()

	store := assetstore.NewFileStore(cfg.Data.AssetsRoot)
	w, err := assetstore.NewWatcher(store)
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for ev := range w.Events() {
			fmt.Printf("%-6s %s\n", ev.Op, ev.Key)
		}
	}()

	logger.Info("watching assets", zap.String("root", store.Root()))
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		fatalf("Error: %v\n", err)
	}
}
