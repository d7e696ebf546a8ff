package main

import (
	"context"
	"fmt"
	"io"

	appcustomer "github.com/Zhima-Mochi/customer-events/internal/application/customer"
	domcustomer "github.com/Zhima-Mochi/customer-events/internal/domain/customer"
	"github.com/Zhima-Mochi/customer-events/internal/infrastructure/listener"
)

// runDemo walks through listener registration step by step, saving the same
// customer after every new registration so the growing fan-out is visible.
// svc must be built on appcustomer.DefaultRegistry().
func runDemo(ctx context.Context, svc *appcustomer.Service, out io.Writer) error {
	section := func(title string) {
		_, _ = fmt.Fprintf(out, "\n--- %s ---\n", title)
	}

	svc.AddListener(listener.NewConsole(out, "explicit"))
	section("Saving after adding an explicit listener")
	john, err := svc.Save(ctx, appcustomer.SaveInput{Name: "John"})
	if err != nil {
		return fmt.Errorf("demo: save: %w", err)
	}

	svc.AddListener(domcustomer.ListenerFuncs{
		Saved: func(_ context.Context, c domcustomer.Customer) {
			_, _ = fmt.Fprintf(out, "[anonymous] customer saved: %s (%s)\n", c.Name, c.ID)
		},
		Deleted: func(_ context.Context, c domcustomer.Customer) {
			_, _ = fmt.Fprintf(out, "[anonymous] customer deleted: %s (%s)\n", c.Name, c.ID)
		},
	})
	section("Saving after adding an anonymous listener")
	if _, err := svc.Save(ctx, appcustomer.SaveInput{ID: john.ID, Name: john.Name}); err != nil {
		return fmt.Errorf("demo: save: %w", err)
	}

	appcustomer.AddListener(listener.NewConsole(out, "package"))
	section("Saving after adding a listener via the package-level AddListener")
	if _, err := svc.Save(ctx, appcustomer.SaveInput{ID: john.ID, Name: john.Name}); err != nil {
		return fmt.Errorf("demo: save: %w", err)
	}

	svc.AddListener(listener.NewConsole(out, "service"))
	section("Saving after adding a listener via Service.AddListener")
	if _, err := svc.Save(ctx, appcustomer.SaveInput{ID: john.ID, Name: john.Name}); err != nil {
		return fmt.Errorf("demo: save: %w", err)
	}

	section("Deleting")
	if _, err := svc.Delete(ctx, john.ID); err != nil {
		return fmt.Errorf("demo: delete: %w", err)
	}
	return nil
}
