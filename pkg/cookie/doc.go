// Package cookie writes HTTP cookies with shared defaults and encrypts values
// with AES-256-GCM.
//
// Flash cookies carry one-shot JSON payloads such as queued alerts between a
// redirect and the next page:
//
//	cookies, err := cookie.New([]string{os.Getenv("COOKIE_SECRETS")})
//	if err != nil {
//	    return err
//	}
//	_ = cookies.SetFlash(w, "alerts", list)
//
//	var list []alerts.Alert
//	err = cookies.GetFlash(w, r, "alerts", &list) // deletes the cookie
//
// Values larger than MaxValueSize are rejected with ErrValueTooLarge rather
// than silently dropped by the browser.
package cookie
