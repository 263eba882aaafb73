package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	cadmtl "github.com/flywave/go-cadmtl"
)

func main() {
	scenePath := flag.String("scene", "", "scene YAML (document + material nodes)")
	prefsPath := flag.String("prefs", "", "preferences YAML, overrides the scene's preferences")
	outPath := flag.String("out", "materials.gltf", "output .gltf or .glb")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: cadmtl2gltf -scene scene.yaml [-prefs prefs.yaml] [-out out.glb]")
		os.Exit(2)
	}
	if err := run(*scenePath, *prefsPath, *outPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath, prefsPath, outPath string, debug bool) error {
	scene, err := cadmtl.LoadScene(scenePath)
	if err != nil {
		return err
	}
	prefs := scene.Preferences
	if prefsPath != "" {
		if prefs, err = cadmtl.LoadPreferences(prefsPath); err != nil {
			return err
		}
	}
	if prefs == nil {
		prefs = cadmtl.DefaultPreferences()
	}
	if prefs.TextureRoot == "" {
		prefs.TextureRoot = filepath.Dir(scenePath)
	}
	prefs.Debug = prefs.Debug || debug

	binary := strings.EqualFold(filepath.Ext(outPath), ".glb")
	if binary && prefs.Images == cadmtl.IMAGES_URI {
		prefs.Images = cadmtl.IMAGES_BUFFER
	}

	logger := cadmtl.NewDefaultLogger(prefs.Debug)
	if !prefs.ExportMaterials() {
		logger.Infof("materials disabled, nothing to export")
		return nil
	}

	session := cadmtl.NewSession(scene.Document, prefs, cadmtl.WithLogger(logger))
	failed := 0
	for _, node := range scene.Nodes {
		if _, err := session.Resolve(node); err != nil {
			failed++
		}
	}

	doc := cadmtl.NewDocument()
	if err := session.Export(doc); err != nil {
		return err
	}
	logger.Infof("%d nodes, %d materials, %d textures, %d failed",
		len(scene.Nodes), len(doc.Materials), len(doc.Textures), failed)

	if binary {
		bt, err := cadmtl.EncodeBinary(doc, 8)
		if err != nil {
			return err
		}
		return errors.Wrapf(os.WriteFile(outPath, bt, 0o644), "write %s", outPath)
	}
	return errors.Wrapf(gltf.Save(doc, outPath), "write %s", outPath)
}
