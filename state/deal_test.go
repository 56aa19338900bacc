package state

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buybuddysave/api"
	"buybuddysave/config"
	"buybuddysave/models"
)

var (
	berlinLocation = &models.Location{Type: "Point", Coordinates: []float64{13.4050, 52.5200}}
	parisLocation  = &models.Location{Type: "Point", Coordinates: []float64{2.3522, 48.8566}}
)

func newDealFixture(client *api.Client) (*AuthStore, *DealStore) {
	config.Load()
	if client == nil {
		client = api.New("http://127.0.0.1:0/api/")
	}
	auth := NewAuthStore(client)
	return auth, NewDealStore(client, auth)
}

func TestGeoDealsEnrichment(t *testing.T) {
	auth, deals := newDealFixture(nil)
	auth.SetProfile(&models.UserProfile{UserID: "u1", Location: parisLocation})

	deals.stores = []models.Store{{
		ID:          "s1",
		Name:        "Mitte Market",
		Address:     "Alexanderplatz 1",
		PhoneNumber: "+49 30 1234567",
		Website:     "https://mitte.example",
		Location:    berlinLocation,
	}}
	deals.deals = []models.Deal{{ID: "d1", StoreID: "s1", Name: "Coffee"}}

	got := deals.GeoDeals()
	require.Len(t, got, 1)

	require.NotNil(t, got[0].StoreName)
	assert.Equal(t, "Mitte Market", *got[0].StoreName)
	assert.Equal(t, "Alexanderplatz 1", *got[0].StoreAddress)
	assert.Equal(t, "+49 30 1234567", *got[0].StorePhoneNumber)
	assert.Equal(t, "https://mitte.example", *got[0].StoreWebsite)
	assert.Equal(t, berlinLocation, got[0].StoreLocation)
	assert.Equal(t, parisLocation, got[0].UserLocation)

	// Berlin to Paris, formatted with exactly two decimals.
	parts := strings.Split(got[0].DistanceKm, ".")
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 2)

	km, err := strconv.ParseFloat(got[0].DistanceKm, 64)
	require.NoError(t, err)
	assert.InDelta(t, 878, km, 5)
}

func TestGeoDealsSentinelSortsLast(t *testing.T) {
	auth, deals := newDealFixture(nil)
	auth.SetProfile(&models.UserProfile{UserID: "u1", Location: berlinLocation})

	deals.stores = []models.Store{
		{ID: "near", Name: "Near", Location: &models.Location{Type: "Point", Coordinates: []float64{13.4234, 52.4996}}},
		{ID: "far", Name: "Far", Location: parisLocation},
		{ID: "nowhere", Name: "Nowhere"}, // no location
	}
	deals.deals = []models.Deal{
		{ID: "d-missing", StoreID: "gone"},
		{ID: "d-far", StoreID: "far"},
		{ID: "d-nowhere", StoreID: "nowhere"},
		{ID: "d-near", StoreID: "near"},
	}

	got := deals.GeoDeals()
	require.Len(t, got, 4)

	assert.Equal(t, "d-near", got[0].ID)
	assert.Equal(t, "d-far", got[1].ID)
	// Sentinel deals come after every resolvable distance, in input order.
	assert.Equal(t, "d-missing", got[2].ID)
	assert.Equal(t, "d-nowhere", got[3].ID)
	assert.Equal(t, "0.00", got[2].DistanceKm)
	assert.Equal(t, "0.00", got[3].DistanceKm)

	// Missing store leaves every store-derived field nil.
	assert.Nil(t, got[2].StoreName)
	assert.Nil(t, got[2].StoreLocation)
}

func TestGeoDealsNoUserLocation(t *testing.T) {
	auth, deals := newDealFixture(nil)
	auth.SetProfile(&models.UserProfile{UserID: "u1"})

	deals.stores = []models.Store{{ID: "s1", Name: "Shop", Location: berlinLocation}}
	deals.deals = []models.Deal{{ID: "d1", StoreID: "s1"}}

	got := deals.GeoDeals()
	require.Len(t, got, 1)
	assert.Equal(t, "0.00", got[0].DistanceKm)
	assert.Nil(t, got[0].UserLocation)
}

func TestGeoDealsStableForEqualDistances(t *testing.T) {
	auth, deals := newDealFixture(nil)
	auth.SetProfile(&models.UserProfile{UserID: "u1", Location: parisLocation})

	deals.stores = []models.Store{{ID: "s1", Name: "Shop", Location: berlinLocation}}
	deals.deals = []models.Deal{
		{ID: "first", StoreID: "s1"},
		{ID: "second", StoreID: "s1"},
		{ID: "third", StoreID: "s1"},
	}

	got := deals.GeoDeals()
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

// listServer echoes every PUT body back, mimicking the overwrite-write
// contract, and counts the writes it sees.
func listServer(t *testing.T, status int) (*httptest.Server, *int) {
	t.Helper()
	puts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
			return
		}
		puts++
		if status != http.StatusOK {
			http.Error(w, "boom", status)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var list models.ShoppingList
		if err := json.Unmarshal(body, &list); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(list)
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func TestAddRemoveDealRoundTrip(t *testing.T) {
	srv, puts := listServer(t, http.StatusOK)
	_, deals := newDealFixture(api.New(srv.URL + "/api/"))

	deals.shoppingLists = []models.ShoppingList{{ID: "l1", Name: "weekly", Deals: []string{"d1", "d2"}}}

	require.NoError(t, deals.AddDeal(context.Background(), "l1", "d3"))
	assert.Equal(t, []string{"d1", "d2", "d3"}, deals.ShoppingLists()[0].Deals)

	require.NoError(t, deals.RemoveDeal(context.Background(), "l1", "d3"))
	assert.Equal(t, []string{"d1", "d2"}, deals.ShoppingLists()[0].Deals)
	assert.Equal(t, 2, *puts)
}

func TestAddDealAllowsDuplicates(t *testing.T) {
	srv, _ := listServer(t, http.StatusOK)
	_, deals := newDealFixture(api.New(srv.URL + "/api/"))

	deals.shoppingLists = []models.ShoppingList{{ID: "l1", Deals: []string{"d1"}}}

	require.NoError(t, deals.AddDeal(context.Background(), "l1", "d1"))
	assert.Equal(t, []string{"d1", "d1"}, deals.ShoppingLists()[0].Deals)

	// Remove takes the first occurrence only.
	require.NoError(t, deals.RemoveDeal(context.Background(), "l1", "d1"))
	assert.Equal(t, []string{"d1"}, deals.ShoppingLists()[0].Deals)
}

func TestAddDealRollsBackOnRemoteFailure(t *testing.T) {
	srv, _ := listServer(t, http.StatusInternalServerError)
	_, deals := newDealFixture(api.New(srv.URL + "/api/"))

	deals.shoppingLists = []models.ShoppingList{{ID: "l1", Deals: []string{"d1"}}}

	err := deals.AddDeal(context.Background(), "l1", "d2")
	require.Error(t, err)

	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	assert.Equal(t, []string{"d1"}, deals.ShoppingLists()[0].Deals)
}

func TestRemoveDealRollsBackOnRemoteFailure(t *testing.T) {
	srv, _ := listServer(t, http.StatusInternalServerError)
	_, deals := newDealFixture(api.New(srv.URL + "/api/"))

	deals.shoppingLists = []models.ShoppingList{{ID: "l1", Deals: []string{"d1", "d2"}}}

	require.Error(t, deals.RemoveDeal(context.Background(), "l1", "d1"))
	assert.Equal(t, []string{"d1", "d2"}, deals.ShoppingLists()[0].Deals)
}

func TestAddDealUnknownList(t *testing.T) {
	_, deals := newDealFixture(nil)

	err := deals.AddDeal(context.Background(), "nope", "d1")
	require.ErrorIs(t, err, ErrListNotFound)

	err = deals.RemoveDeal(context.Background(), "nope", "d1")
	require.ErrorIs(t, err, ErrListNotFound)
}

func TestRemoveAbsentDealIsNoop(t *testing.T) {
	srv, puts := listServer(t, http.StatusOK)
	_, deals := newDealFixture(api.New(srv.URL + "/api/"))

	deals.shoppingLists = []models.ShoppingList{{ID: "l1", Deals: []string{"d1"}}}

	require.NoError(t, deals.RemoveDeal(context.Background(), "l1", "d9"))
	assert.Equal(t, []string{"d1"}, deals.ShoppingLists()[0].Deals)
	assert.Equal(t, 0, *puts)
}
