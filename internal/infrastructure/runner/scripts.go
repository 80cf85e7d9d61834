package runner

// File names inside the container work directory
const (
	notebookFile     = "notebook.Rmd"
	outputFile       = "notebook.html"
	purledFile       = "notebook.R"
	captureFile      = "capture.R"
	dependenciesFile = "dependencies.txt"

	containerWorkDir = "/work"
)

const renderScript = `rmarkdown::render('notebook.Rmd', output_file = 'notebook.html', quiet = TRUE, envir = new.env())`

const purlScript = `knitr::purl('notebook.Rmd', output = 'notebook.R', quiet = TRUE, documentation = 0)`

// captureScript runs the purled notebook in a fresh session and records
// every package it attached or loaded, excluding base packages.
const captureScript = `before <- loadedNamespaces()
source('notebook.R', echo = FALSE, local = new.env())
base <- rownames(utils::installed.packages(priority = 'base'))
pkgs <- sort(setdiff(union(loadedNamespaces(), .packages()), c(before, base)))
versions <- vapply(pkgs, function(p) as.character(utils::packageVersion(p)), character(1))
writeLines(if (length(pkgs) > 0) paste0(pkgs, '==', versions) else character(0), 'dependencies.txt')
`
