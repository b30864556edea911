package export

import "html/template"

type pageTemplateData struct {
	Title     string
	Framework string
	Content   template.HTML
	RootRel   string
	IndexRel  string
}

type indexItem struct {
	Href  string
	Title string
}

type frameworkIndexData struct {
	Framework string
	PageCount int
	Items     []indexItem
}

type mainIndexItem struct {
	Framework string
	Pages     int
}

type mainIndexData struct {
	FrameworkCount int
	TotalPages     int
	Items          []mainIndexItem
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.Framework}}</title>
<style>
` + siteCSS + `
</style>
</head>
<body>
<nav class="breadcrumb">
<a href="{{.RootRel}}index.html">Archive</a> &rsaquo;
<a href="{{.IndexRel}}">{{.Framework}}</a> &rsaquo;
<span>{{.Title}}</span>
</nav>
<main class="content">
{{.Content}}
</main>
<footer>
<a href="{{.IndexRel}}">&larr; Back to {{.Framework}}</a>
</footer>
</body>
</html>
`))

var frameworkIndexTemplate = template.Must(template.New("framework-index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Framework}} - Apple Docs Archive</title>
<style>
` + siteCSS + `
</style>
</head>
<body>
<nav class="breadcrumb">
<a href="../index.html">Archive</a> &rsaquo;
<span>{{.Framework}}</span>
</nav>
<main class="content">
<h1>{{.Framework}}</h1>
<p class="meta">{{.PageCount}} pages</p>
<input type="text" id="filter" placeholder="Filter pages..." autofocus>
<ul class="page-list" id="pages">
{{range .Items}}<li><a href="{{.Href}}">{{.Title}}</a></li>
{{end}}</ul>
</main>
<script>
document.getElementById('filter').addEventListener('input', function () {
  var q = this.value.toLowerCase();
  var items = document.querySelectorAll('#pages li');
  items.forEach(function (li) {
    li.style.display = li.textContent.toLowerCase().includes(q) ? '' : 'none';
  });
});
</script>
</body>
</html>
`))

var mainIndexTemplate = template.Must(template.New("main-index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Apple Docs Archive</title>
<style>
` + siteCSS + `
</style>
</head>
<body>
<main class="content">
<h1>Apple Developer Documentation</h1>
<p class="meta">Offline archive &middot; {{.FrameworkCount}} frameworks &middot; {{.TotalPages}} pages</p>
<ul class="framework-list">
{{range .Items}}<li><a href="{{.Framework}}/index.html">{{.Framework}}</a> <span class="count">{{.Pages}} pages</span></li>
{{end}}</ul>
</main>
</body>
</html>
`))

const siteCSS = `
:root { color-scheme: light dark; }
body {
  font-family: -apple-system, BlinkMacSystemFont, "SF Pro Text", "Helvetica Neue", sans-serif;
  max-width: 860px;
  margin: 0 auto;
  padding: 0 20px 40px;
  line-height: 1.6;
}
.breadcrumb { padding: 14px 0; font-size: 14px; color: #6e6e73; }
.breadcrumb a { color: #0066cc; text-decoration: none; }
.content h1, .content h2, .content h3 { font-weight: 600; letter-spacing: -0.01em; }
.content pre {
  background: rgba(125, 125, 125, 0.1);
  padding: 12px 16px;
  border-radius: 8px;
  overflow-x: auto;
}
.content code { font-family: "SF Mono", Menlo, monospace; font-size: 0.92em; }
.content table { border-collapse: collapse; }
.content th, .content td { border: 1px solid #d2d2d7; padding: 6px 12px; }
.meta { color: #6e6e73; }
#filter {
  width: 100%;
  padding: 10px 14px;
  font-size: 16px;
  border: 1px solid #d2d2d7;
  border-radius: 10px;
  margin-bottom: 16px;
}
.page-list, .framework-list { list-style: none; padding: 0; }
.page-list li, .framework-list li { padding: 4px 0; }
.page-list a, .framework-list a { color: #0066cc; text-decoration: none; }
.count { color: #6e6e73; font-size: 14px; margin-left: 8px; }
footer { margin-top: 32px; font-size: 14px; }
footer a { color: #0066cc; text-decoration: none; }
`
