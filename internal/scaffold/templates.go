package scaffold

// Fixed file templates written by the scaffolder. All of them are
// create-only: an existing file is never overwritten.

// entryPointTemplate is the generated cmd/<project>/main.go. It accepts the
// exact argument shape the reload supervisor launches it with
// (serve --http=HOST:PORT) and blocks on the listener so the supervisor
// never sees it exit.
const entryPointTemplate = `package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

func main() {
	addr := "0.0.0.0:{{.AppPort}}"
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--http=") {
			addr = strings.TrimPrefix(arg, "--http=")
		}
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "{{.Project}} is running")
	})

	fmt.Println("listening on", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
`

// cssInputTemplate seeds the tailwind input stylesheet.
const cssInputTemplate = `@tailwind base;
@tailwind components;
@tailwind utilities;
`

// baseLayoutTemplate seeds views/layouts/base.templ with a minimal document
// shell that links the compiled stylesheet.
const baseLayoutTemplate = `package layouts

templ Base() {
	<!DOCTYPE html>
	<html lang="en">
		<head>
			<meta charset="UTF-8"/>
			<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
			<title>{{.Title}}</title>
			<link rel="stylesheet" href="/static/css/style.css"/>
			<script src="/static/js/app.js" defer></script>
		</head>
		<body>
			{ children... }
		</body>
	</html>
}
`
