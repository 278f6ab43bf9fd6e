package notebook

import "testing"

func TestMultipleSubscribersInOrder(t *testing.T) {
	c := newTestCell(t, CellOptions{Language: "go"})

	var order []int
	c.OnLanguageChange(func(string) { order = append(order, 1) })
	c.OnLanguageChange(func(string) { order = append(order, 2) })

	c.SetLanguage("python")

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("Expected delivery order [1 2], got %v", order)
	}
}

func TestUnsubscribeOneOfTwo(t *testing.T) {
	c := newTestCell(t, CellOptions{Language: "go"})

	var first, second int
	sub := c.OnLanguageChange(func(string) { first++ })
	c.OnLanguageChange(func(string) { second++ })

	c.SetLanguage("python")
	sub.Unsubscribe()
	c.SetLanguage("ruby")

	if first != 1 {
		t.Errorf("Expected 1 delivery to the unsubscribed listener, got %d", first)
	}
	if second != 2 {
		t.Errorf("Expected 2 deliveries to the remaining listener, got %d", second)
	}
}

func TestUnsubscribeTwiceIsSafe(t *testing.T) {
	c := newTestCell(t, CellOptions{})

	sub := c.OnLanguageChange(func(string) {})
	sub.Unsubscribe()
	sub.Unsubscribe()

	// Subscribing again after an unsubscribe still works.
	fired := false
	c.OnLanguageChange(func(string) { fired = true })
	c.SetLanguage("go")

	if !fired {
		t.Error("Expected the fresh listener to fire")
	}
}
