package state

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"sync"

	"buybuddysave/api"
	"buybuddysave/geo"
	"buybuddysave/models"
)

// ErrListNotFound is returned when a shopping-list mutation references a
// list id that is not in the cache.
var ErrListNotFound = errors.New("shopping list not found")

// sentinelDistance marks a deal whose distance could not be computed. It
// sorts as positive infinity, never as a literal zero.
const sentinelDistance = "0.00"

// DealStore owns the cached store and deal catalogs and the shopping lists.
type DealStore struct {
	mu            sync.RWMutex
	client        *api.Client
	auth          *AuthStore
	stores        []models.Store
	deals         []models.Deal
	shoppingLists []models.ShoppingList
}

func NewDealStore(client *api.Client, auth *AuthStore) *DealStore {
	return &DealStore{client: client, auth: auth}
}

func (s *DealStore) FetchStores(ctx context.Context) error {
	var stores []models.Store
	if err := s.client.Get(ctx, "stores/", &stores); err != nil {
		return fmt.Errorf("fetch stores: %w", err)
	}

	s.mu.Lock()
	s.stores = stores
	s.mu.Unlock()
	return nil
}

func (s *DealStore) FetchDeals(ctx context.Context) error {
	var deals []models.Deal
	if err := s.client.Get(ctx, "stores/deal/", &deals); err != nil {
		return fmt.Errorf("fetch deals: %w", err)
	}

	s.mu.Lock()
	s.deals = deals
	s.mu.Unlock()
	return nil
}

func (s *DealStore) FetchShoppingLists(ctx context.Context) error {
	var lists []models.ShoppingList
	if err := s.client.Get(ctx, "stores/shopping_list/", &lists); err != nil {
		return fmt.Errorf("fetch shopping lists: %w", err)
	}

	s.mu.Lock()
	s.shoppingLists = lists
	s.mu.Unlock()
	return nil
}

func (s *DealStore) Stores() []models.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stores)
}

func (s *DealStore) Deals() []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.deals)
}

func (s *DealStore) ShoppingLists() []models.ShoppingList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lists := make([]models.ShoppingList, len(s.shoppingLists))
	for i, l := range s.shoppingLists {
		lists[i] = l
		lists[i].Deals = slices.Clone(l.Deals)
	}
	return lists
}

// GeoDeals returns the cached deals enriched with resolved store fields and
// the distance to the current user, sorted ascending by distance. Deals
// whose distance is unknown (missing store, store without a location, or no
// user location) carry the "0.00" sentinel and sort last. Equal distances
// keep their relative input order.
func (s *DealStore) GeoDeals() []models.GeoDeal {
	profile := s.auth.Profile()

	s.mu.RLock()
	stores := s.stores
	deals := s.deals
	s.mu.RUnlock()

	var userLocation *models.Location
	if profile != nil {
		userLocation = profile.Location
	}

	type rankedDeal struct {
		models.GeoDeal
		distance float64
	}
	ranked := make([]rankedDeal, 0, len(deals))

	for _, deal := range deals {
		store := findStore(stores, deal.StoreID)

		item := models.GeoDeal{
			Deal:         deal,
			UserLocation: userLocation,
			DistanceKm:   sentinelDistance,
		}
		if store != nil {
			item.StoreName = &store.Name
			item.StoreAddress = &store.Address
			item.StorePhoneNumber = &store.PhoneNumber
			item.StoreWebsite = &store.Website
			item.StoreLocation = store.Location
		}

		if item.StoreLocation != nil && userLocation != nil {
			from, fromOK := geo.FromLonLat(item.StoreLocation.Coordinates)
			to, toOK := geo.FromLonLat(userLocation.Coordinates)
			if fromOK && toOK {
				meters := geo.Distance(from, to)
				item.DistanceKm = strconv.FormatFloat(meters/1000, 'f', 2, 64)
			}
		}

		// A formatted "0.00" sorts as infinite even when it came from a
		// genuinely zero distance; the sentinel is a string, not a number.
		distance := math.Inf(1)
		if item.DistanceKm != sentinelDistance {
			distance, _ = strconv.ParseFloat(item.DistanceKm, 64)
		}

		ranked = append(ranked, rankedDeal{GeoDeal: item, distance: distance})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distance < ranked[j].distance
	})

	enriched := make([]models.GeoDeal, len(ranked))
	for i, r := range ranked {
		enriched[i] = r.GeoDeal
	}
	return enriched
}

// CreateShoppingList creates a new list remotely and appends the server's
// copy to the cache.
func (s *DealStore) CreateShoppingList(ctx context.Context, list models.ShoppingList) error {
	var created models.ShoppingList
	if err := s.client.Post(ctx, "stores/shopping_list/", list, &created); err != nil {
		return fmt.Errorf("create shopping list: %w", err)
	}

	s.mu.Lock()
	s.shoppingLists = append(s.shoppingLists, created)
	s.mu.Unlock()
	return nil
}

// AddDeal appends dealID to the list's deal sequence, then overwrites the
// whole list on the server. Duplicates are permitted. The local mutation is
// optimistic; on remote failure the prior sequence is restored and the
// error returned.
func (s *DealStore) AddDeal(ctx context.Context, listID, dealID string) error {
	s.mu.Lock()
	i := s.listIndex(listID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("add deal to list %s: %w", listID, ErrListNotFound)
	}
	snapshot := slices.Clone(s.shoppingLists[i].Deals)
	s.shoppingLists[i].Deals = append(s.shoppingLists[i].Deals, dealID)
	list := s.shoppingLists[i]
	s.mu.Unlock()

	return s.persistList(ctx, list, snapshot)
}

// RemoveDeal removes the first occurrence of dealID from the list, then
// overwrites the whole list on the server. Removing an id that is not in
// the list is a no-op and issues no remote write.
func (s *DealStore) RemoveDeal(ctx context.Context, listID, dealID string) error {
	s.mu.Lock()
	i := s.listIndex(listID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("remove deal from list %s: %w", listID, ErrListNotFound)
	}
	j := slices.Index(s.shoppingLists[i].Deals, dealID)
	if j < 0 {
		s.mu.Unlock()
		return nil
	}
	snapshot := slices.Clone(s.shoppingLists[i].Deals)
	s.shoppingLists[i].Deals = slices.Delete(s.shoppingLists[i].Deals, j, j+1)
	list := s.shoppingLists[i]
	s.mu.Unlock()

	return s.persistList(ctx, list, snapshot)
}

// persistList overwrites the full list resource. On failure it restores the
// snapshot taken before the optimistic mutation; on success the server's
// copy supersedes the local one.
func (s *DealStore) persistList(ctx context.Context, list models.ShoppingList, snapshot []string) error {
	var updated models.ShoppingList
	err := s.client.Put(ctx, "stores/shopping_list/"+list.ID+"/", list, &updated)
	if err != nil {
		s.mu.Lock()
		if i := s.listIndex(list.ID); i >= 0 {
			s.shoppingLists[i].Deals = snapshot
		}
		s.mu.Unlock()
		return fmt.Errorf("persist shopping list %s: %w", list.ID, err)
	}

	s.mu.Lock()
	if i := s.listIndex(list.ID); i >= 0 {
		s.shoppingLists[i] = updated
	}
	s.mu.Unlock()
	return nil
}

func (s *DealStore) listIndex(listID string) int {
	for i, l := range s.shoppingLists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

func findStore(stores []models.Store, storeID string) *models.Store {
	for i := range stores {
		if stores[i].ID == storeID {
			return &stores[i]
		}
	}
	return nil
}
