// Command tqvault inspects, exports, and safeguards Titan Quest save files
// from the command line.
//
// Usage:
//
//	tqvault dump <file>
//	tqvault export <file> [-out dir]
//	tqvault backup <file> [-comp none|zip|zstd|lz4|br]
//	tqvault restore <file.tqbak> <out>
//	tqvault watch [dir]
//
// Settings are read from tqvault.ini in the working directory when present:
//
//	dir      = <save directory for watch>
//	comp     = <default backup compression>
//	database = <ini file mapping item record IDs to display names>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/ini.v1"

	tqvault "github.com/afjback/TQVaultAE"
)

type config struct {
	dir      string
	comp     tqvault.Compression
	database string
}

func loadConfig() config {
	cfg := config{comp: tqvault.CompZSTD}
	wd, _ := os.Getwd()
	cfg.dir = wd

	file, err := ini.Load("tqvault.ini")
	if err != nil {
		return cfg
	}
	sec := file.Section("")
	if dir := sec.Key("dir").String(); dir != "" {
		cfg.dir = dir
	}
	if comp := sec.Key("comp").String(); comp != "" {
		c, err := parseCompression(comp)
		if err != nil {
			log.Printf("tqvault.ini: %v", err)
		} else {
			cfg.comp = c
		}
	}
	cfg.database = sec.Key("database").String()
	return cfg
}

func parseCompression(s string) (tqvault.Compression, error) {
	switch strings.ToLower(s) {
	case "none":
		return tqvault.CompNone, nil
	case "zip":
		return tqvault.CompZIP, nil
	case "zstd":
		return tqvault.CompZSTD, nil
	case "lz4":
		return tqvault.CompLZ4, nil
	case "br", "brotli":
		return tqvault.CompBR, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

// iniDatabase is an ItemDatabase backed by an ini file with an [items]
// section mapping record IDs to display names.
type iniDatabase struct {
	names map[string]string
}

func (d *iniDatabase) ItemName(recordID string) (string, bool) {
	name, ok := d.names[recordID]
	return name, ok
}

func openDatabase(path string) *iniDatabase {
	db := &iniDatabase{names: map[string]string{}}
	if path == "" {
		return db
	}
	file, err := ini.Load(path)
	if err != nil {
		log.Printf("item database %s: %v", path, err)
		return db
	}
	for _, key := range file.Section("items").Keys() {
		db.names[key.Name()] = key.String()
	}
	return db
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	cfg := loadConfig()
	db := openDatabase(cfg.database)

	switch os.Args[1] {
	case "dump":
		if len(os.Args) != 3 {
			usage()
		}
		dump(os.Args[2], db)

	case "export":
		if len(os.Args) < 3 {
			usage()
		}
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("out", ".", "directory for the exported listings")
		fs.Parse(os.Args[3:])
		sf, err := tqvault.Load(os.Args[2], db, tqvault.WithDiagnosticExport(*out))
		if err != nil {
			log.Fatalf("load: %v", err)
		}
		for _, w := range sf.Warnings {
			log.Printf("warning: %v", w)
		}

	case "backup":
		if len(os.Args) < 3 {
			usage()
		}
		fs := flag.NewFlagSet("backup", flag.ExitOnError)
		comp := fs.String("comp", "", "compression (none|zip|zstd|lz4|br)")
		fs.Parse(os.Args[3:])
		c := cfg.comp
		if *comp != "" {
			var err error
			if c, err = parseCompression(*comp); err != nil {
				log.Fatal(err)
			}
		}
		path := os.Args[2]
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		if err := tqvault.WriteBackup(path+tqvault.BackupExt, data, c); err != nil {
			log.Fatalf("backup: %v", err)
		}
		fmt.Println("wrote", path+tqvault.BackupExt)

	case "restore":
		if len(os.Args) != 4 {
			usage()
		}
		data, err := tqvault.ReadBackup(os.Args[2])
		if err != nil {
			log.Fatalf("restore: %v", err)
		}
		if err := os.WriteFile(os.Args[3], data, 0o644); err != nil {
			log.Fatalf("write: %v", err)
		}
		fmt.Println("restored", len(data), "bytes to", os.Args[3])

	case "watch":
		dir := cfg.dir
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		watch(dir, db)

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tqvault <dump|export|backup|restore|watch> [args]")
	os.Exit(2)
}

func dump(path string, db tqvault.ItemDatabase) {
	sf, err := tqvault.Load(path, db)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	printSave(sf)
}

func printSave(sf *tqvault.SaveFile) {
	kind := "character"
	if sf.Kind() == tqvault.VaultFile {
		kind = "vault"
	}
	fmt.Printf("%s (%s), %d sacks\n", sf.PlayerName(), kind, sf.NumberOfSacks())
	for i := 0; i < sf.NumberOfSacks(); i++ {
		s := sf.Sack(i)
		fmt.Printf("  sack %d: %d items\n", i, s.Count())
		for j := 0; j < s.Count(); j++ {
			it := s.Item(j)
			fmt.Printf("    (%d,%d) %s\n", it.PointX, it.PointY, it.BaseName)
		}
	}
	if eq := sf.Equipment(); eq != nil {
		fmt.Printf("  equipment: %d items\n", eq.Count())
	}
	for _, w := range sf.Warnings {
		fmt.Printf("  warning: %v\n", w)
	}
}

// watch re-dumps save files as the game writes them. The delay gives the
// game time to finish its own write before we read the file back.
func watch(dir string, db tqvault.ItemDatabase) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		log.Fatal(err)
	}
	log.Printf("watching %s", dir)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			ext := strings.ToLower(filepath.Ext(event.Name))
			if ext != ".chr" && ext != ".dxb" && ext != ".vault" {
				continue
			}
			time.Sleep(time.Second)
			sf, err := tqvault.Load(event.Name, db)
			if err != nil {
				log.Printf("%s: %v", event.Name, err)
				continue
			}
			printSave(sf)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}
