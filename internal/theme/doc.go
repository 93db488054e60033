// Package theme implements the fetch-and-apply pipeline for remote themes.
// A Loader fetches a theme document, copies its css_variables onto a style
// sink in document order, persists the selection and publishes themeChanged.
package theme
