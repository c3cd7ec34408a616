package zabbix

// Zabbix returns most numeric fields as strings, kept as-is here
// to avoid lossy conversions on passthrough.

// Host is a monitored host
type Host struct {
	HostID      string      `json:"hostid"`
	Host        string      `json:"host"`
	Name        string      `json:"name"`
	Status      string      `json:"status"` // "0" enabled, "1" disabled
	Description string      `json:"description,omitempty"`
	Interfaces  []Interface `json:"interfaces,omitempty"`
}

// Interface is a host connection endpoint
type Interface struct {
	InterfaceID string           `json:"interfaceid,omitempty"`
	Type        int              `json:"type"` // 1 agent, 2 snmp, 3 ipmi, 4 jmx
	Main        int              `json:"main"`
	UseIP       int              `json:"useip"`
	IP          string           `json:"ip"`
	DNS         string           `json:"dns"`
	Port        string           `json:"port"`
	Details     *InterfaceDetail `json:"details,omitempty"`
}

// InterfaceDetail holds snmp-specific interface settings
type InterfaceDetail struct {
	Version   int    `json:"version"`
	Community string `json:"community"`
}

// HostGroup is a named group of hosts
type HostGroup struct {
	GroupID string `json:"groupid"`
	Name    string `json:"name"`
}

// Template is a monitoring template
type Template struct {
	TemplateID string `json:"templateid"`
	Host       string `json:"host"` // technical name used for lookups
	Name       string `json:"name"`
}

// Item is a single collected metric
type Item struct {
	ItemID    string `json:"itemid"`
	HostID    string `json:"hostid"`
	Name      string `json:"name"`
	Key       string `json:"key_"`
	ValueType string `json:"value_type"`
	LastValue string `json:"lastvalue"`
	LastClock string `json:"lastclock"`
	Units     string `json:"units"`
}

// Trigger is a problem condition definition
type Trigger struct {
	TriggerID   string `json:"triggerid"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Value       string `json:"value"` // "0" ok, "1" problem
	LastChange  string `json:"lastchange"`
}

// Problem is an active problem event
type Problem struct {
	EventID      string `json:"eventid"`
	Name         string `json:"name"`
	Severity     string `json:"severity"`
	Clock        string `json:"clock"`
	Acknowledged string `json:"acknowledged"`
}

// Event is a historical event record
type Event struct {
	EventID string `json:"eventid"`
	Name    string `json:"name"`
	Clock   string `json:"clock"`
	Value   string `json:"value"`
}

// HistoryEntry is a single historical value of an item
type HistoryEntry struct {
	ItemID string `json:"itemid"`
	Clock  string `json:"clock"`
	Value  string `json:"value"`
}

// HostGetParams are filters for HostGet
type HostGetParams struct {
	Output           []string            `json:"output,omitempty"`
	SelectInterfaces []string            `json:"selectInterfaces,omitempty"`
	HostIDs          []string            `json:"hostids,omitempty"`
	Filter           map[string][]string `json:"filter,omitempty"`
}

// HostCreateParams is the payload for HostCreate
type HostCreateParams struct {
	Host          string         `json:"host"`
	Name          string         `json:"name"`
	Interfaces    []Interface    `json:"interfaces"`
	Groups        []GroupRef     `json:"groups"`
	Templates     []TemplateRef  `json:"templates,omitempty"`
	InventoryMode int            `json:"inventory_mode"`
	Inventory     map[string]any `json:"inventory,omitempty"`
}

// HostUpdateParams is the payload for HostUpdate, same shape as create plus the id
type HostUpdateParams struct {
	HostID        string         `json:"hostid"`
	Host          string         `json:"host,omitempty"`
	Name          string         `json:"name,omitempty"`
	Groups        []GroupRef     `json:"groups,omitempty"`
	Templates     []TemplateRef  `json:"templates,omitempty"`
	InventoryMode int            `json:"inventory_mode,omitempty"`
	Inventory     map[string]any `json:"inventory,omitempty"`
}

// GroupRef references a host group by id
type GroupRef struct {
	GroupID string `json:"groupid"`
}

// TemplateRef references a template by id
type TemplateRef struct {
	TemplateID string `json:"templateid"`
}

// ItemGetParams are filters for ItemGet
type ItemGetParams struct {
	Output    []string          `json:"output,omitempty"`
	HostIDs   []string          `json:"hostids,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Monitored bool              `json:"monitored"`
	Limit     int               `json:"limit,omitempty"`
}

// TriggerGetParams are filters for TriggerGet
type TriggerGetParams struct {
	Output        []string `json:"output,omitempty"`
	HostIDs       []string `json:"hostids,omitempty"`
	Monitored     bool     `json:"monitored"`
	SkipDependent bool     `json:"skipDependent"`
	OnlyTrue      bool     `json:"only_true,omitempty"`
}

// ProblemGetParams are filters for ProblemGet
type ProblemGetParams struct {
	Output    string   `json:"output,omitempty"`
	HostIDs   []string `json:"hostids,omitempty"`
	Recent    string   `json:"recent,omitempty"`
	SortField []string `json:"sortfield,omitempty"`
	SortOrder string   `json:"sortorder,omitempty"`
}

// HistoryGetParams are filters for HistoryGet
type HistoryGetParams struct {
	ItemIDs   []string `json:"itemids"`
	History   int      `json:"history"` // value type, 0 float, 3 unsigned
	TimeFrom  int64    `json:"time_from,omitempty"`
	TimeTill  int64    `json:"time_till,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	SortField string   `json:"sortfield,omitempty"`
	SortOrder string   `json:"sortorder,omitempty"`
}

type hostIDs struct {
	HostIDs []string `json:"hostids"`
}

type groupIDs struct {
	GroupIDs []string `json:"groupids"`
}
