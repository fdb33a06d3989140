package model

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// 操作の種類
type Action string

const (
	ActionCreate   Action = "create"
	ActionRead     Action = "read"
	ActionSearch   Action = "search"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionPurchase Action = "purchase"
	ActionRestock  Action = "restock"
)

// 操作ごとの許可ロール表。抜けている操作は全拒否。
var actionPolicy = map[Action][]Role{
	ActionCreate:   {RoleAdmin},
	ActionUpdate:   {RoleAdmin},
	ActionDelete:   {RoleAdmin},
	ActionRestock:  {RoleAdmin},
	ActionRead:     {RoleAdmin, RoleCustomer},
	ActionSearch:   {RoleAdmin, RoleCustomer},
	ActionPurchase: {RoleAdmin, RoleCustomer},
}

// Canはroleがactionを実行できるかを返す
func Can(role Role, action Action) bool {
	for _, r := range actionPolicy[action] {
		if r == role {
			return true
		}
	}
	return false
}
