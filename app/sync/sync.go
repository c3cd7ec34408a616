// Package sync bridges the equipment inventory and the Zabbix server:
// it creates, updates and removes Zabbix hosts to match inventory records,
// and pulls monitoring data snapshots back for the web layer.
package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"

	"github.com/parcinfo/zbxlink/app/store"
	"github.com/parcinfo/zbxlink/app/zabbix"
)

//go:generate moq -out mocks/zabbix_api.go -pkg mocks -skip-ensure -fmt goimports . ZabbixAPI
//go:generate moq -out mocks/inventory.go -pkg mocks -skip-ensure -fmt goimports . Inventory

const snapshotTTL = 5 * time.Minute

// ZabbixAPI defines the subset of the zabbix client used by the service
type ZabbixAPI interface {
	Login(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	HostGet(ctx context.Context, params zabbix.HostGetParams) ([]zabbix.Host, error)
	HostCreate(ctx context.Context, host zabbix.HostCreateParams) (string, error)
	HostUpdate(ctx context.Context, host zabbix.HostUpdateParams) error
	HostDelete(ctx context.Context, hostIDs ...string) error
	HostGroupGet(ctx context.Context, name string) ([]zabbix.HostGroup, error)
	HostGroupCreate(ctx context.Context, name string) (string, error)
	TemplateGet(ctx context.Context, name string) ([]zabbix.Template, error)
	ItemGet(ctx context.Context, params zabbix.ItemGetParams) ([]zabbix.Item, error)
	TriggerGet(ctx context.Context, params zabbix.TriggerGetParams) ([]zabbix.Trigger, error)
	HistoryGet(ctx context.Context, params zabbix.HistoryGetParams) ([]zabbix.HistoryEntry, error)
}

// Inventory defines the subset of the store used by the service
type Inventory interface {
	ListMonitored(ctx context.Context) ([]store.Equipment, error)
	ListOrphaned(ctx context.Context) ([]store.Equipment, error)
	GetEquipment(ctx context.Context, id int64) (store.Equipment, error)
	SetHostID(ctx context.Context, id int64, hostID string) error
	ClearHostID(ctx context.Context, id int64) error
}

// Service implements sync operations between inventory and zabbix
type Service struct {
	Client        ZabbixAPI
	Inventory     Inventory
	SNMPCommunity string
	Concurrency   int // bulk sync worker count, defaults to 4

	snapshots cache.Cache[int64, Snapshot]
}

// Result is the outcome of a single host operation
type Result struct {
	EquipmentID int64  `json:"equipment_id"`
	Name        string `json:"name"`
	HostID      string `json:"host_id,omitempty"`
	Action      string `json:"action"` // created, updated, removed, skipped
	Err         string `json:"error,omitempty"`
}

// BulkResult aggregates results of a full sync pass
type BulkResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Processed    []Result `json:"processed"`
}

// Snapshot is the monitoring data pulled for one equipment record
type Snapshot struct {
	Equipment store.Equipment                  `json:"equipment"`
	Host      zabbix.Host                      `json:"host"`
	Items     []zabbix.Item                    `json:"items"`
	Triggers  []zabbix.Trigger                 `json:"triggers"`
	History   map[string][]zabbix.HistoryEntry `json:"history,omitempty"`
	Collected time.Time                        `json:"collected"`
}

// New makes a sync service with the given client and inventory
func New(client ZabbixAPI, inventory Inventory, snmpCommunity string) *Service {
	return &Service{
		Client:        client,
		Inventory:     inventory,
		SNMPCommunity: snmpCommunity,
		snapshots:     cache.NewCache[int64, Snapshot]().WithMaxKeys(10000),
	}
}

// TestConnection logs in and returns the api version
func (s *Service) TestConnection(ctx context.Context) (string, error) {
	if err := s.Client.Login(ctx); err != nil {
		return "", fmt.Errorf("zabbix connection failed: %w", err)
	}
	ver, err := s.Client.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("can't get zabbix version: %w", err)
	}
	return ver, nil
}

// SyncHost creates or updates the zabbix host for one equipment record.
// A stale stored host id (host gone on the server) is cleared and the host recreated.
func (s *Service) SyncHost(ctx context.Context, eq store.Equipment) (Result, error) {
	res := Result{EquipmentID: eq.ID, Name: eq.Name}

	if eq.IPAddress == "" {
		res.Action = "skipped"
		res.Err = "no ip address"
		return res, fmt.Errorf("equipment %d has no ip address", eq.ID)
	}

	groupID, err := s.ensureHostGroup(ctx, groupName(eq))
	if err != nil {
		// fall back to the default group rather than failing the whole host
		log.Printf("[WARN] can't ensure group for %s, falling back to default: %v", eq.Name, err)
		if groupID, err = s.ensureHostGroup(ctx, "Default"); err != nil {
			res.Err = err.Error()
			return res, fmt.Errorf("can't ensure default host group: %w", err)
		}
	}

	templates, err := s.templatesFor(ctx, eq.Category)
	if err != nil {
		log.Printf("[WARN] template lookup failed for %s: %v", eq.Name, err)
	}

	hostID := eq.ZabbixHostID
	if hostID != "" {
		// verify the stored id still exists on the server
		hosts, err := s.Client.HostGet(ctx, zabbix.HostGetParams{HostIDs: []string{hostID}})
		if err != nil {
			res.Err = err.Error()
			return res, fmt.Errorf("can't verify host %s: %w", hostID, err)
		}
		if len(hosts) == 0 {
			log.Printf("[INFO] stale host id %s for %s, will recreate", hostID, eq.Name)
			if err := s.Inventory.ClearHostID(ctx, eq.ID); err != nil {
				res.Err = err.Error()
				return res, fmt.Errorf("can't clear stale host id: %w", err)
			}
			hostID = ""
		}
	}

	if hostID != "" {
		upd := zabbix.HostUpdateParams{
			HostID:        hostID,
			Host:          technicalName(eq),
			Name:          visibleName(eq),
			Groups:        []zabbix.GroupRef{{GroupID: groupID}},
			Templates:     templates,
			InventoryMode: 1,
			Inventory:     inventoryData(eq),
		}
		if err := s.Client.HostUpdate(ctx, upd); err != nil {
			res.Err = err.Error()
			return res, fmt.Errorf("can't update host for %s: %w", eq.Name, err)
		}
		res.HostID, res.Action = hostID, "updated"
		return res, nil
	}

	create := zabbix.HostCreateParams{
		Host:          technicalName(eq),
		Name:          visibleName(eq),
		Interfaces:    []zabbix.Interface{snmpInterface(eq.IPAddress, s.SNMPCommunity)},
		Groups:        []zabbix.GroupRef{{GroupID: groupID}},
		Templates:     templates,
		InventoryMode: 1,
		Inventory:     inventoryData(eq),
	}
	newID, err := s.Client.HostCreate(ctx, create)
	if err != nil {
		res.Err = err.Error()
		return res, fmt.Errorf("can't create host for %s: %w", eq.Name, err)
	}
	if err := s.Inventory.SetHostID(ctx, eq.ID, newID); err != nil {
		res.Err = err.Error()
		return res, fmt.Errorf("host %s created but id not persisted: %w", newID, err)
	}
	res.HostID, res.Action = newID, "created"
	return res, nil
}

// RemoveHost deletes the zabbix host and clears the stored id
func (s *Service) RemoveHost(ctx context.Context, eq store.Equipment) (Result, error) {
	res := Result{EquipmentID: eq.ID, Name: eq.Name, HostID: eq.ZabbixHostID}
	if eq.ZabbixHostID == "" {
		res.Action = "skipped"
		return res, nil
	}
	if err := s.Client.HostDelete(ctx, eq.ZabbixHostID); err != nil {
		res.Err = err.Error()
		return res, fmt.Errorf("can't delete host %s for %s: %w", eq.ZabbixHostID, eq.Name, err)
	}
	if err := s.Inventory.ClearHostID(ctx, eq.ID); err != nil {
		res.Err = err.Error()
		return res, fmt.Errorf("host deleted but id not cleared for %s: %w", eq.Name, err)
	}
	res.Action = "removed"
	return res, nil
}

// BulkSync syncs all monitored equipment concurrently, then removes orphans.
// Individual failures don't stop the pass, they are accumulated in the result.
func (s *Service) BulkSync(ctx context.Context) (BulkResult, error) {
	monitored, err := s.Inventory.ListMonitored(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("can't list monitored equipment: %w", err)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]Result, len(monitored))
	gr := syncs.NewSizedGroup(concurrency, syncs.Context(ctx))
	for i, eq := range monitored {
		gr.Go(func(ctx context.Context) {
			r, err := s.SyncHost(ctx, eq)
			if err != nil {
				log.Printf("[WARN] sync failed for %s: %v", eq.Name, err)
			}
			results[i] = r
		})
	}
	gr.Wait()

	res := BulkResult{Processed: results}

	// sequential cleanup, orphan removal is rare and cheap
	orphaned, err := s.Inventory.ListOrphaned(ctx)
	if err != nil {
		return res, fmt.Errorf("can't list orphaned equipment: %w", err)
	}
	for _, eq := range orphaned {
		r, err := s.RemoveHost(ctx, eq)
		if err != nil {
			log.Printf("[WARN] cleanup failed for %s: %v", eq.Name, err)
		}
		res.Processed = append(res.Processed, r)
	}

	for _, r := range res.Processed {
		if r.Err != "" {
			res.ErrorCount++
			continue
		}
		res.SuccessCount++
	}

	log.Printf("[INFO] bulk sync completed: %d ok, %d failed", res.SuccessCount, res.ErrorCount)
	if res.ErrorCount > 0 {
		return res, fmt.Errorf("bulk sync finished with %d errors", res.ErrorCount)
	}
	return res, nil
}

// Cleanup removes zabbix hosts for equipment no longer monitored
func (s *Service) Cleanup(ctx context.Context) (BulkResult, error) {
	orphaned, err := s.Inventory.ListOrphaned(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("can't list orphaned equipment: %w", err)
	}
	res := BulkResult{}
	for _, eq := range orphaned {
		r, err := s.RemoveHost(ctx, eq)
		if err != nil {
			log.Printf("[WARN] cleanup failed for %s: %v", eq.Name, err)
			res.ErrorCount++
		} else {
			res.SuccessCount++
		}
		res.Processed = append(res.Processed, r)
	}
	if res.ErrorCount > 0 {
		return res, fmt.Errorf("cleanup finished with %d errors", res.ErrorCount)
	}
	return res, nil
}

// CollectMetrics pulls host info, items, active triggers and recent history
// for every registered equipment and caches the snapshots for the web layer
func (s *Service) CollectMetrics(ctx context.Context, historyHours int) (BulkResult, error) {
	monitored, err := s.Inventory.ListMonitored(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("can't list monitored equipment: %w", err)
	}

	res := BulkResult{}
	for _, eq := range monitored {
		if eq.ZabbixHostID == "" {
			continue
		}
		snap, err := s.collectOne(ctx, eq, historyHours)
		if err != nil {
			log.Printf("[WARN] metrics collection failed for %s: %v", eq.Name, err)
			res.ErrorCount++
			res.Processed = append(res.Processed, Result{EquipmentID: eq.ID, Name: eq.Name, Err: err.Error()})
			continue
		}
		s.snapshots.Set(eq.ID, snap, snapshotTTL)
		res.SuccessCount++
		res.Processed = append(res.Processed, Result{EquipmentID: eq.ID, Name: eq.Name,
			HostID: eq.ZabbixHostID, Action: "collected"})
	}

	log.Printf("[INFO] metrics collected for %d hosts, %d failed", res.SuccessCount, res.ErrorCount)
	if res.ErrorCount > 0 {
		return res, fmt.Errorf("metrics collection finished with %d errors", res.ErrorCount)
	}
	return res, nil
}

// GetSnapshot returns the cached monitoring snapshot for the equipment, if fresh
func (s *Service) GetSnapshot(equipmentID int64) (Snapshot, bool) {
	return s.snapshots.Get(equipmentID)
}

func (s *Service) collectOne(ctx context.Context, eq store.Equipment, historyHours int) (Snapshot, error) {
	hosts, err := s.Client.HostGet(ctx, zabbix.HostGetParams{HostIDs: []string{eq.ZabbixHostID}})
	if err != nil {
		return Snapshot{}, err
	}
	if len(hosts) == 0 {
		return Snapshot{}, fmt.Errorf("host %s not found on server", eq.ZabbixHostID)
	}

	items, err := s.Client.ItemGet(ctx, zabbix.ItemGetParams{HostIDs: []string{eq.ZabbixHostID}, Limit: 50})
	if err != nil {
		return Snapshot{}, err
	}

	triggers, err := s.Client.TriggerGet(ctx, zabbix.TriggerGetParams{HostIDs: []string{eq.ZabbixHostID}, OnlyTrue: true})
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Equipment: eq, Host: hosts[0], Items: items, Triggers: triggers, Collected: time.Now()}

	if historyHours > 0 {
		snap.History = map[string][]zabbix.HistoryEntry{}
		timeFrom := time.Now().Add(-time.Duration(historyHours) * time.Hour).Unix()
		limit := 10
		if len(items) < limit {
			limit = len(items)
		}
		for _, item := range items[:limit] { // first items only to keep the load bounded
			history, err := s.Client.HistoryGet(ctx, zabbix.HistoryGetParams{
				ItemIDs: []string{item.ItemID}, TimeFrom: timeFrom, Limit: 100,
				SortField: "clock", SortOrder: "DESC",
			})
			if err != nil {
				log.Printf("[WARN] can't get history for item %s (%s): %v", item.Name, item.ItemID, err)
				continue
			}
			if len(history) > 0 {
				snap.History[item.Name] = history
			}
		}
	}
	return snap, nil
}

// ensureHostGroup returns the id of an existing group or creates it
func (s *Service) ensureHostGroup(ctx context.Context, name string) (string, error) {
	groups, err := s.Client.HostGroupGet(ctx, name)
	if err != nil {
		return "", fmt.Errorf("can't look up host group %q: %w", name, err)
	}
	if len(groups) > 0 {
		return groups[0].GroupID, nil
	}
	id, err := s.Client.HostGroupCreate(ctx, name)
	if err != nil {
		return "", fmt.Errorf("can't create host group %q: %w", name, err)
	}
	log.Printf("[INFO] created host group %q (%s)", name, id)
	return id, nil
}

// templatesFor maps the equipment category to zabbix template references,
// falling back to Generic SNMP when nothing matches
func (s *Service) templatesFor(ctx context.Context, category string) ([]zabbix.TemplateRef, error) {
	names, ok := templateNames[strings.ToLower(category)]
	if !ok {
		names = []string{"Generic SNMP"}
	}

	var refs []zabbix.TemplateRef
	for _, name := range names {
		templates, err := s.Client.TemplateGet(ctx, name)
		if err != nil {
			log.Printf("[WARN] template %q lookup failed: %v", name, err)
			continue
		}
		if len(templates) > 0 {
			refs = append(refs, zabbix.TemplateRef{TemplateID: templates[0].TemplateID})
		}
	}

	if len(refs) == 0 {
		templates, err := s.Client.TemplateGet(ctx, "Generic SNMP")
		if err != nil {
			return nil, fmt.Errorf("can't find fallback template: %w", err)
		}
		if len(templates) > 0 {
			refs = append(refs, zabbix.TemplateRef{TemplateID: templates[0].TemplateID})
		}
	}
	return refs, nil
}

// templateNames maps inventory categories to zabbix template technical names
var templateNames = map[string][]string{
	"server":  {"Linux by SNMP", "Generic SNMP"},
	"laptop":  {"Generic SNMP"},
	"desktop": {"Generic SNMP"},
	"network": {"Network interfaces by SNMP", "Generic SNMP"},
	"printer": {"Printer Generic by SNMP"},
	"ups":     {"UPS by SNMP"},
}

func groupName(eq store.Equipment) string {
	location := eq.Location
	if location == "" {
		location = "Unknown"
	}
	return location + " - " + eq.Category
}

func technicalName(eq store.Equipment) string {
	if eq.Hostname != "" {
		return eq.Hostname
	}
	return fmt.Sprintf("equipment-%d", eq.ID)
}

func visibleName(eq store.Equipment) string {
	if eq.AssetTag != "" {
		return fmt.Sprintf("%s (%s)", eq.Name, eq.AssetTag)
	}
	return eq.Name
}

func snmpInterface(ip, community string) zabbix.Interface {
	return zabbix.Interface{
		Type:  2, // snmp
		Main:  1,
		UseIP: 1,
		IP:    ip,
		Port:  "161",
		Details: &zabbix.InterfaceDetail{
			Version:   2,
			Community: community,
		},
	}
}

// inventoryData builds the zabbix inventory payload from the equipment record
func inventoryData(eq store.Equipment) map[string]any {
	data := map[string]any{
		"name":         eq.Name,
		"type":         eq.Category,
		"tag":          eq.AssetTag,
		"asset_tag":    eq.AssetTag,
		"macaddress_a": eq.MACAddress,
		"serialno_a":   eq.SerialNumber,
		"hardware":     strings.TrimSpace(eq.Manufacturer + " " + eq.Model),
		"vendor":       eq.Manufacturer,
		"model":        eq.Model,
		"location":     eq.Location,
		"notes":        eq.Notes,
	}
	if eq.PurchaseDate != nil {
		data["date_hw_purchase"] = eq.PurchaseDate.Format("2006-01-02")
	}
	if eq.WarrantyExpiration != nil {
		data["date_hw_expiry"] = eq.WarrantyExpiration.Format("2006-01-02")
	}
	return data
}
