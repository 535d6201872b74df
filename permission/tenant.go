package permission

// tenantDefinitions is the TENANT-scope catalog: actions inside a single
// organization. Tenant roles are bound through the tenant membership
// mechanism, not through the admin assignment path.
var tenantDefinitions = []Definition{
	{Key: WildcardTenant, DisplayName: "Organization Admin", Description: "Grants every organization permission unconditionally", Category: "Organization", SortOrder: 0},
	{Key: "org:settings:read", DisplayName: "View Settings", Description: "Read organization settings", Category: "Organization", SortOrder: 1},
	{Key: "org:settings:manage", DisplayName: "Manage Settings", Description: "Change organization settings", Category: "Organization", SortOrder: 2},
	{Key: "org:billing:read", DisplayName: "View Billing", Description: "Read the organization's subscription and invoices", Category: "Organization", SortOrder: 3},

	{Key: "members:read", DisplayName: "View Members", Description: "List organization members", Category: "Members", SortOrder: 1},
	{Key: "members:invite", DisplayName: "Invite Members", Description: "Invite new members into the organization", Category: "Members", SortOrder: 2},
	{Key: "members:remove", DisplayName: "Remove Members", Description: "Remove members from the organization", Category: "Members", SortOrder: 3},

	{Key: "projects:read", DisplayName: "View Projects", Description: "List and open projects", Category: "Projects", SortOrder: 1},
	{Key: "projects:create", DisplayName: "Create Projects", Description: "Create new projects", Category: "Projects", SortOrder: 2},
	{Key: "projects:update", DisplayName: "Update Projects", Description: "Edit project configuration", Category: "Projects", SortOrder: 3},
	{Key: "projects:delete", DisplayName: "Delete Projects", Description: "Delete projects", Category: "Projects", SortOrder: 4},

	{Key: "agents:read", DisplayName: "View Agents", Description: "Inspect configured agents and their runs", Category: "Agents", SortOrder: 1},
	{Key: "agents:run", DisplayName: "Run Agents", Description: "Trigger agent executions", Category: "Agents", SortOrder: 2},
	{Key: "agents:configure", DisplayName: "Configure Agents", Description: "Create and edit agent configurations", Category: "Agents", SortOrder: 3},
}
