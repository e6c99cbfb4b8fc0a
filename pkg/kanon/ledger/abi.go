package ledger

// schemaRegistryABI is the fixed interface of the on-chain schema
// registry contract. Schemas are keyed by owner address and schema id.
const schemaRegistryABI = `[
  {
    "inputs": [
      { "internalType": "string", "name": "schemaId", "type": "string" },
      { "internalType": "string", "name": "schemaJson", "type": "string" }
    ],
    "name": "createSchema",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "owner", "type": "address" },
      { "internalType": "string", "name": "schemaId", "type": "string" },
      { "internalType": "string", "name": "schemaJson", "type": "string" }
    ],
    "name": "adminCreateSchema",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "owner", "type": "address" },
      { "internalType": "string", "name": "schemaId", "type": "string" }
    ],
    "name": "schemas",
    "outputs": [
      { "internalType": "string", "name": "", "type": "string" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "owner", "type": "address" }
    ],
    "name": "getSchemaIds",
    "outputs": [
      { "internalType": "string[]", "name": "", "type": "string[]" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "owner",
    "outputs": [
      { "internalType": "address", "name": "", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "newOwner", "type": "address" }
    ],
    "name": "transferOwnership",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`
