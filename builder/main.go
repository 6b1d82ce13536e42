package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// target descreve um binário do repositório.
type target struct {
	name    string
	pkg     string
	binary  string
	ldflags string
}

// gerador e cliente exigem CGO: sqlite (mattn/go-sqlite3) e raylib.
func targets() []target {
	gui := "-s -w"
	if runtime.GOOS == "windows" {
		gui = "-extldflags=-static -s -w -H=windowsgui"
	}
	return []target{
		{name: "gerador", pkg: "./gerador", binary: "gerador", ldflags: "-s -w"},
		{name: "cliente", pkg: "./cliente", binary: "solstice", ldflags: gui},
	}
}

func main() {
	outDir := flag.String("out", "bin", "diretório de saída dos binários")
	only := flag.String("only", "", "compila apenas o alvo indicado (gerador|cliente)")
	flag.Parse()

	fmt.Println(ansiCyan + "== Solstice builder ==" + ansiReset)
	start := time.Now()

	env := cgoEnv()
	built := 0
	for _, t := range targets() {
		if *only != "" && *only != t.name {
			continue
		}
		out := filepath.Join(*outDir, withExeSuffix(t.binary))
		if err := build(t, out, env); err != nil {
			fmt.Printf(ansiRed+"[Builder] %v"+ansiReset+"\n", err)
			os.Exit(1)
		}
		built++
	}
	if built == 0 {
		fmt.Printf(ansiRed+"[Builder] alvo desconhecido: %q"+ansiReset+"\n", *only)
		os.Exit(2)
	}

	fmt.Printf(ansiGreen+"[Builder] %d binário(s) em %v"+ansiReset+"\n", built, time.Since(start).Round(time.Second))
	fmt.Println(ansiYellow + "Gerar sem janela: bin/gerador -seed 42 -out mundo.sol" + ansiReset)
}

func withExeSuffix(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// cgoEnv devolve o ambiente do processo com CGO ligado. No Windows o gcc do
// MSYS2 entra no PATH.
func cgoEnv() []string {
	env := append(os.Environ(), "CGO_ENABLED=1")
	if runtime.GOOS != "windows" {
		return env
	}
	const mingw = `C:\msys64\mingw64\bin`
	return append(env, "CC=gcc", "PATH="+mingw+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func build(t target, out string, env []string) error {
	fmt.Printf(ansiYellow+"[Builder] %s -> %s"+ansiReset+"\n", t.name, out)
	cmd := exec.Command("go", "build", "-ldflags", t.ldflags, "-o", out, t.pkg)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("falha ao compilar %s: %w", t.name, err)
	}
	return nil
}
