package packager

import "text/template"

// projectDir is the directory the notebook lives in inside the package image.
const projectDir = "/home/rstudio/project"

var dockerfileTemplate = template.Must(template.New("Dockerfile").Parse(`FROM {{.ImageRef}}

WORKDIR {{.ProjectDir}}

COPY install.R dependencies.yaml ./
RUN Rscript install.R

COPY notebook.Rmd Makefile ./

CMD ["make", "render"]
`))

var makefileTemplate = template.Must(template.New("Makefile").Parse(`IMAGE ?= {{.ImageName}}
OUTPUT ?= output

.PHONY: build run render clean

build:
	docker build -t $(IMAGE) .

run: build
	mkdir -p $(OUTPUT)
	docker run --rm -v "$(CURDIR)/$(OUTPUT):{{.ProjectDir}}/$(OUTPUT)" $(IMAGE)

render:
	Rscript -e "rmarkdown::render('notebook.Rmd', output_dir = '$(OUTPUT)')"

clean:
	rm -rf $(OUTPUT)
	-docker rmi $(IMAGE)
`))

var installTemplate = template.Must(template.New("install.R").Parse(`# Installs the packages used by "{{.Title}}".
if (!requireNamespace("remotes", quietly = TRUE)) {
  install.packages("remotes")
}
{{range .Dependencies}}{{if .Version}}
remotes::install_version("{{.Name}}", version = "{{.Version}}", upgrade = "never"){{else}}
if (!requireNamespace("{{.Name}}", quietly = TRUE)) install.packages("{{.Name}}"){{end}}{{end}}
`))

var readmeTemplate = template.Must(template.New("README.md").Parse(`# {{.Title}}

Reproducibility package generated for this notebook.

- Base image: ` + "`{{.ImageRef}}`" + `
- Content hash: ` + "`{{.ContentHash}}`" + `

## Dependencies
{{if .Dependencies}}
| Package | Version | Detected by |
|---|---|---|
{{range .Dependencies}}| {{.Name}} | {{if .Version}}{{.Version}}{{else}}latest{{end}} | {{.Source}} |
{{end}}{{else}}
The notebook loads no packages besides base R.
{{end}}
## Usage

` + "```" + `sh
make run      # build the image and render notebook.Rmd into ./output
make render   # render with a local R installation
make clean
` + "```" + `

Packages without a recorded version were only found by static analysis and
are installed in the latest version available for the image.
`))
