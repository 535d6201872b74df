package permission

// platformDefinitions is the PLATFORM-scope catalog: cross-tenant operator
// actions performed by platform administrators.
var platformDefinitions = []Definition{
	{Key: WildcardPlatform, DisplayName: "Super Admin", Description: "Grants every platform permission unconditionally", Category: "Platform", SortOrder: 0},
	{Key: "platform:settings:read", DisplayName: "View Platform Settings", Description: "Read global platform configuration", Category: "Platform", SortOrder: 1},
	{Key: "platform:settings:manage", DisplayName: "Manage Platform Settings", Description: "Change global platform configuration", Category: "Platform", SortOrder: 2},

	{Key: "organizations:read", DisplayName: "View Organizations", Description: "List and inspect tenant organizations", Category: "Organizations", SortOrder: 1},
	{Key: "organizations:create", DisplayName: "Create Organizations", Description: "Provision new tenant organizations", Category: "Organizations", SortOrder: 2},
	{Key: "organizations:update", DisplayName: "Update Organizations", Description: "Edit tenant organization details", Category: "Organizations", SortOrder: 3},
	{Key: "organizations:suspend", DisplayName: "Suspend Organizations", Description: "Suspend or reinstate a tenant organization", Category: "Organizations", SortOrder: 4},
	{Key: "organizations:delete", DisplayName: "Delete Organizations", Description: "Permanently remove a tenant organization", Category: "Organizations", SortOrder: 5},

	{Key: "admins:read", DisplayName: "View Administrators", Description: "List administrator accounts", Category: "Administrators", SortOrder: 1},
	{Key: "admins:manage", DisplayName: "Manage Administrators", Description: "Create, edit and deactivate administrator accounts", Category: "Administrators", SortOrder: 2},
	{Key: "roles:read", DisplayName: "View Roles", Description: "List roles and their permissions", Category: "Administrators", SortOrder: 3},
	{Key: "roles:manage", DisplayName: "Manage Roles", Description: "Create, edit, delete and assign roles", Category: "Administrators", SortOrder: 4},

	{Key: "billing:read", DisplayName: "View Billing", Description: "Read invoices and subscription state", Category: "Billing", SortOrder: 1},
	{Key: "billing:refunds", DisplayName: "Issue Refunds", Description: "Issue refunds against tenant invoices", Category: "Billing", SortOrder: 2},
	{Key: "billing:plans:manage", DisplayName: "Manage Plans", Description: "Edit subscription plans and pricing", Category: "Billing", SortOrder: 3},

	{Key: "support:tickets:read", DisplayName: "View Support Tickets", Description: "Read tenant support tickets", Category: "Support", SortOrder: 1},
	{Key: "support:tickets:manage", DisplayName: "Manage Support Tickets", Description: "Respond to, reassign and close support tickets", Category: "Support", SortOrder: 2},

	{Key: "analytics:read", DisplayName: "View Analytics", Description: "Read platform usage analytics", Category: "Analytics", SortOrder: 1},
	{Key: "analytics:export", DisplayName: "Export Analytics", Description: "Export analytics data sets", Category: "Analytics", SortOrder: 2},

	{Key: "audit:read", DisplayName: "View Audit Logs", Description: "Read the role and assignment audit trail", Category: "Audit", SortOrder: 1},
}
