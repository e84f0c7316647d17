package catalog

import (
	"reflect"
	"testing"

	"trade_console/internal/domain"
)

func scenarioGroups() []domain.MarketGroup {
	return []domain.MarketGroup{
		{MarketName: domain.CategorySynthetic, Instruments: []string{"R_100", "1HZ100V"}},
		{MarketName: domain.CategoryForex, Instruments: []string{"EURUSD", "USDJPY"}, Closed: []string{"USDJPY"}},
	}
}

func TestBuilder_Build_Scenario(t *testing.T) {
	b := NewBuilder(nil, nil)

	views := b.Build(scenarioGroups(), NewFavoriteSet("EURUSD"))

	if len(views.Categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(views.Categories))
	}
	if views.Categories[0].Label != "Derived" || views.Categories[1].Label != "Forex" {
		t.Errorf("Unexpected labels: %s, %s", views.Categories[0].Label, views.Categories[1].Label)
	}

	want := []string{"R_100", "1HZ100V", "EURUSD", "USDJPY"}
	if got := views.All.Symbols(); !reflect.DeepEqual(got, want) {
		t.Errorf("All = %v, want %v", got, want)
	}
	if got := views.Favourites.Symbols(); !reflect.DeepEqual(got, []string{"EURUSD"}) {
		t.Errorf("Favourites = %v, want [EURUSD]", got)
	}

	usdjpy, _ := views.All.Find("USDJPY")
	if usdjpy.IsOpen() {
		t.Error("USDJPY should be closed")
	}
	oneSec, _ := views.All.Find("1HZ100V")
	if oneSec.DisplayName != "Volatility 100 (1s) Index" || !oneSec.IsOneSecond {
		t.Errorf("Unexpected 1HZ100V label: %+v", oneSec)
	}
}

func TestBuilder_Build_PriorityOrderNotArrivalOrder(t *testing.T) {
	b := NewBuilder(nil, nil)
	groups := []domain.MarketGroup{
		{MarketName: domain.CategoryCommodities, Instruments: []string{"XAUUSD"}},
		{MarketName: "basket_index", Instruments: []string{"WLDUSD"}},
		{MarketName: domain.CategoryForex, Instruments: []string{"EURUSD"}},
		{MarketName: domain.CategorySynthetic, Instruments: []string{"R_50"}},
	}

	views := b.Build(groups, FavoriteSet{})

	var ids []string
	for _, c := range views.Categories {
		ids = append(ids, c.ID)
	}
	want := []string{"synthetic_index", "forex", "commodities", "basket_index"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Category order = %v, want %v", ids, want)
	}
	if views.Categories[3].Label != "Basket Index" {
		t.Errorf("Expected derived label \"Basket Index\", got %q", views.Categories[3].Label)
	}
}

func TestBuilder_Build_Partition(t *testing.T) {
	b := NewBuilder(nil, nil)
	groups := append(scenarioGroups(),
		domain.MarketGroup{MarketName: domain.CategoryForex, Instruments: []string{"GBPUSD", "EURUSD"}},
		domain.MarketGroup{MarketName: domain.CategoryCommodities, Instruments: []string{"R_100", "XAGUSD"}},
	)

	views := b.Build(groups, FavoriteSet{})

	counts := make(map[string]int)
	var union []string
	for _, c := range views.Categories {
		for _, instr := range c.Instruments {
			counts[instr.Symbol]++
			if string(instr.Category) != c.ID {
				t.Errorf("%s sits in %s but belongs to %s", instr.Symbol, c.ID, instr.Category)
			}
		}
		union = append(union, c.Symbols()...)
	}
	for _, s := range views.All.Symbols() {
		if counts[s] != 1 {
			t.Errorf("%s appears in %d categories", s, counts[s])
		}
	}
	if !reflect.DeepEqual(union, views.All.Symbols()) {
		t.Errorf("Union %v differs from All %v", union, views.All.Symbols())
	}
}

func TestBuilder_Build_Deterministic(t *testing.T) {
	b := NewBuilder(nil, nil)
	fav := NewFavoriteSet("1HZ100V", "EURUSD")

	first := b.Build(scenarioGroups(), fav)
	for i := 0; i < 5; i++ {
		if again := b.Build(scenarioGroups(), fav); !reflect.DeepEqual(first, again) {
			t.Fatal("Build should be deterministic")
		}
	}
}

func TestBuilder_Build_FavouritesSubsequence(t *testing.T) {
	b := NewBuilder(nil, nil)
	// Order in the set differs from catalog order; a stale symbol is included.
	fav := NewFavoriteSet("USDJPY", "GONE", "R_100")

	views := b.Build(scenarioGroups(), fav)

	want := []string{"R_100", "USDJPY"}
	if got := views.Favourites.Symbols(); !reflect.DeepEqual(got, want) {
		t.Errorf("Favourites = %v, want %v", got, want)
	}
}

func TestBuilder_Build_Empty(t *testing.T) {
	views := NewBuilder(nil, nil).Build(nil, FavoriteSet{})

	if len(views.Categories) != 0 || views.All.Len() != 0 || views.Favourites.Len() != 0 {
		t.Errorf("Expected empty views, got %+v", views)
	}
}
