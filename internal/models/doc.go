// Package models defines the core domain models for Racha Conta.
//
// # Models
//
//   - Group: aggregate root owning members, expenses and debts
//   - Member: a participant in a group's expense pool
//   - Expense: a single immutable payment event
//   - Debt: a directed obligation produced by settlement
//
// # Design Principles
//
// 1. **ID strings, not pointers**: relationships reference IDs to avoid
// circular references between group, expense and debt.
// 2. **Decimal amounts**: all money uses decimal.Decimal so repeated
// recomputation never accumulates floating-point drift.
// 3. **Append-only expenses**: expenses are never edited or deleted;
// correcting a mistake means adding a compensating expense.
package models
