package http

// Register godoc
// @Summary Register a member account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,full_name=string} true "Account data"
// @Success 201 {object} object{id=int,username=string,role=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary Log in
// @Description Exchange username and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get own profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string,email=string,role=string}
// @Router /users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// ListUsers godoc
// @Summary List accounts
// @Description List accounts, optionally filtered by role (Admin only)
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param role query string false "Role filter (member or admin)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} object{id=int,username=string,role=string}
// @Router /admin/users [get]
func (h *UserHandler) ListUsersDoc() {}

// ChangeRole godoc
// @Summary Change an account's role
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{role=string} true "New role"
// @Success 200 {object} object{id=int,role=string}
// @Failure 400 {object} object{error=string}
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) ChangeRoleDoc() {}

// GetStats godoc
// @Summary Account directory statistics
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{total_accounts=int,admin_count=int,member_count=int,active_accounts=int}
// @Router /admin/stats [get]
func (h *UserHandler) GetStatsDoc() {}
