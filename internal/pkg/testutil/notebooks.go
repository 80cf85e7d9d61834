package testutil

// SampleRMarkdown is a small notebook exercising front matter, an R chunk,
// a chunk excluded from evaluation and a python chunk.
const SampleRMarkdown = "---\n" +
	"title: \"Iris exploration\"\n" +
	"output: html_document\n" +
	"---\n" +
	"\n" +
	"Some prose.\n" +
	"\n" +
	"```{r setup}\n" +
	"library(ggplot2)\n" +
	"data <- read.csv(\"/home/alice/data/iris.csv\")\n" +
	"```\n" +
	"\n" +
	"```{r skipped, eval=FALSE}\n" +
	"setwd(\"/tmp\")\n" +
	"```\n" +
	"\n" +
	"```{python}\n" +
	"print('not R')\n" +
	"```\n" +
	"\n" +
	"```{r model}\n" +
	"x <- rnorm(10)\n" +
	"dplyr::summarise(data, m = mean(Sepal.Length))\n" +
	"```\n"

// SampleRScript is plain R code without any R Markdown structure.
const SampleRScript = "library(data.table)\n" +
	"set.seed(42)\n" +
	"x <- runif(5)\n" +
	"print(x)\n"
