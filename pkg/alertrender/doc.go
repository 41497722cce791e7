// Package alertrender renders flash alerts as HTML using templ components.
//
// A Renderer holds named themes that map alert kinds and types to CSS
// classes. Three themes are built in (bootstrap, tailwind and minimal) and
// more can be loaded from YAML:
//
//	themes:
//	  - name: brand
//	    container: "flash-stack"
//	    kinds:
//	      alert: "flash"
//	      toast: "flash flash--toast"
//	    types:
//	      success: {class: "flash--ok", icon: "icon-check"}
//	      info: {class: "flash--info"}
//	    title_class: "flash__title"
//	    message_class: "flash__body"
//	    dismiss_class: "flash__close"
//	    hidden_class: "sr-only"
//
// Title and message are escaped. HTMLContent is written verbatim and must
// only carry trusted markup.
//
// Usage with a manager:
//
//	r := alertrender.New(alertrender.WithDefaultTheme("tailwind"))
//	m := alerts.NewManager(alerts.WithRenderer(r))
//
//	// in a templ layout
//	@r.Alerts(m, true)
//	@alertrender.Script()
//
// The client script reads data-auto-dismiss (milliseconds) and
// data-expires-at (RFC 3339) to remove alerts in the browser.
package alertrender
