// Package dbus broadcasts theme changes on the session bus.
//
// The emitter exports io.github.themepad.Theme at /io/github/themepad/Theme
// with a GetCurrent method and a ThemeChanged(id, name, category) signal, so
// other desktop processes can follow the applied theme.
package dbus
