// Package email sends HTML messages through Postmark, or writes them to disk
// in development. The alert email relay builds on EmailSender.
//
//	sender, err := email.NewFromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "user@example.com",
//	    Subject:  "You have new notifications",
//	    BodyHTML: body,
//	})
package email
