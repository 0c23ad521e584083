// Package menu is the terminal front end of the selector.
//
// Terminal implements selector.Renderer with promptui: menus are
// promptui.Select lists that start in search mode, so typing a key such as
// "2" or "s" narrows the list to that entry and Enter confirms it. Ctrl-C
// maps to the interrupt action of the current key map and Ctrl-D to the
// escape action.
//
// Titles are shown with Highlight: the part that fits the length limit in
// green and the overflow in red, or split by a bar when colour is off.
package menu
